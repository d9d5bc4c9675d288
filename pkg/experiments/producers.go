package experiments

import (
	"github.com/fracpete/goweka/pkg/java"
	"github.com/pkg/errors"
)

const (
	crossValidationProducerCN = "weka.experiment.CrossValidationResultProducer"
	randomSplitProducerCN     = "weka.experiment.RandomSplitResultProducer"
	propertyNodeCN            = "weka.experiment.PropertyNode"
	propertyDescriptorCN      = "java.beans.PropertyDescriptor"
)

// ResultProducerConfig 配置实验的结果生成器。Configure返回生成器对象以及
// 告诉WEKA在迭代中变化哪个嵌套属性的属性路径。
type ResultProducerConfig interface {
	Configure(env java.Env, classification bool) (producer *java.Object, propertyPath *java.Object, err error)
}

// configureSplitEvaluator 按分类/回归模式创建划分评估器，并取出其内部的分类器。
func configureSplitEvaluator(env java.Env, classification bool) (evaluator *java.Object, classifier *java.Object, err error) {
	classname := "weka.experiment.ClassifierSplitEvaluator"
	if !classification {
		classname = "weka.experiment.RegressionSplitEvaluator"
	}
	evaluator, err = env.MakeInstance(classname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "创建划分评估器出错")
	}
	classifier, err = java.CallObject(env, evaluator, "getClassifier")
	if err != nil {
		return nil, nil, err
	}
	return evaluator, classifier, nil
}

// buildPropertyPath 构造两级属性路径：生成器类上的splitEvaluator属性，
// 以及评估器类上的classifier属性。两种生成器的路径结构完全一致，因此共用。
func buildPropertyPath(env java.Env, producerClass string, evaluator *java.Object) (*java.Object, error) {
	path, err := env.MakeObjectArray(2, propertyNodeCN)
	if err != nil {
		return nil, errors.Wrap(err, "创建属性路径数组出错")
	}

	producerCls, err := env.FindClass(producerClass)
	if err != nil {
		return nil, err
	}
	descriptor, err := env.MakeInstance(propertyDescriptorCN, "splitEvaluator", producerCls)
	if err != nil {
		return nil, errors.Wrap(err, "创建splitEvaluator属性描述符出错")
	}
	node, err := env.MakeInstance(propertyNodeCN, evaluator, descriptor, producerCls)
	if err != nil {
		return nil, err
	}
	if err := env.SetObjectArrayElement(path, 0, node); err != nil {
		return nil, err
	}

	evaluatorCls, err := env.GetObjectClass(evaluator)
	if err != nil {
		return nil, err
	}
	descriptor, err = env.MakeInstance(propertyDescriptorCN, "classifier", evaluatorCls)
	if err != nil {
		return nil, errors.Wrap(err, "创建classifier属性描述符出错")
	}
	node, err = env.MakeInstance(propertyNodeCN, evaluatorCls, descriptor, evaluatorCls)
	if err != nil {
		return nil, err
	}
	if err := env.SetObjectArrayElement(path, 1, node); err != nil {
		return nil, err
	}

	return path, nil
}

// CrossValidationConfig 配置交叉验证结果生成器。
type CrossValidationConfig struct {
	Folds int
}

var _ ResultProducerConfig = &CrossValidationConfig{}

func (c *CrossValidationConfig) Configure(env java.Env, classification bool) (*java.Object, *java.Object, error) {
	producer, err := env.MakeInstance(crossValidationProducerCN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "创建交叉验证结果生成器出错")
	}
	if _, err := env.Call(producer, "setNumFolds", c.Folds); err != nil {
		return nil, nil, err
	}

	evaluator, _, err := configureSplitEvaluator(env, classification)
	if err != nil {
		return nil, nil, err
	}
	if _, err := env.Call(producer, "setSplitEvaluator", evaluator); err != nil {
		return nil, nil, err
	}

	path, err := buildPropertyPath(env, crossValidationProducerCN, evaluator)
	if err != nil {
		return nil, nil, err
	}
	return producer, path, nil
}

// RandomSplitConfig 配置随机划分结果生成器。
type RandomSplitConfig struct {
	Percentage    float64 // 训练集百分比，开区间(0,100)
	PreserveOrder bool    // 保持数据顺序，即不做随机打乱
}

var _ ResultProducerConfig = &RandomSplitConfig{}

func (c *RandomSplitConfig) Configure(env java.Env, classification bool) (*java.Object, *java.Object, error) {
	producer, err := env.MakeInstance(randomSplitProducerCN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "创建随机划分结果生成器出错")
	}
	if _, err := env.Call(producer, "setRandomizeData", !c.PreserveOrder); err != nil {
		return nil, nil, err
	}
	if _, err := env.Call(producer, "setTrainPercent", c.Percentage); err != nil {
		return nil, nil, err
	}

	evaluator, _, err := configureSplitEvaluator(env, classification)
	if err != nil {
		return nil, nil, err
	}
	if _, err := env.Call(producer, "setSplitEvaluator", evaluator); err != nil {
		return nil, nil, err
	}

	path, err := buildPropertyPath(env, randomSplitProducerCN, evaluator)
	if err != nil {
		return nil, nil, err
	}
	return producer, path, nil
}
