// Package clusterers 包装weka.clusterers下的聚类器与其评估工具。
// 聚类算法全部运行在WEKA内部，这里不做任何训练数据的本地校验，
// 类型与能力检查通过Capabilities委托给WEKA。
package clusterers

import (
	"fmt"

	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/dataset"
	"github.com/fracpete/goweka/pkg/java"
)

const (
	clustererType       = "weka.clusterers.Clusterer"
	clusterEvaluationCN = "weka.clusterers.ClusterEvaluation"
)

// Clusterer 包装一个聚类器对象。
type Clusterer struct {
	core.OptionHandler
}

func wrap(env java.Env, jobject *java.Object) (*Clusterer, error) {
	handler, err := core.NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(clustererType); err != nil {
		return nil, err
	}
	return &Clusterer{OptionHandler: *handler}, nil
}

// FromClassName 通过类名创建聚类器。
func FromClassName(env java.Env, classname string) (*Clusterer, error) {
	jobject, err := core.NewInstance(env, classname)
	if err != nil {
		return nil, err
	}
	return wrap(env, jobject)
}

// FromExisting 采用一个已存在的聚类器对象。非Clusterer类型时报错。
func FromExisting(env java.Env, jobject *java.Object) (*Clusterer, error) {
	return wrap(env, jobject)
}

// Capabilities 返回聚类器的能力描述。
func (c *Clusterer) Capabilities() (*core.Capabilities, error) {
	jobject, err := java.CallObject(c.Env(), c.JObject(), "getCapabilities")
	if err != nil {
		return nil, err
	}
	return core.NewCapabilities(c.Env(), jobject)
}

// BuildClusterer 用数据训练聚类器。训练在WEKA侧原地完成，没有返回值。
func (c *Clusterer) BuildClusterer(data *dataset.Instances) error {
	_, err := c.Env().Call(c.JObject(), "buildClusterer", data.JObject())
	return err
}

// ClusterInstance 返回单条数据所属的簇下标。
func (c *Clusterer) ClusterInstance(inst *dataset.Instance) (float64, error) {
	return java.CallDouble(c.Env(), c.JObject(), "clusterInstance", inst.JObject())
}

// ClusterEvaluation 在已训练的聚类器与保留数据集上做评估。
type ClusterEvaluation struct {
	core.JavaObject
}

func NewClusterEvaluation(env java.Env) (*ClusterEvaluation, error) {
	jobject, err := core.NewInstance(env, clusterEvaluationCN)
	if err != nil {
		return nil, err
	}
	base, err := core.NewJavaObject(env, jobject)
	if err != nil {
		return nil, err
	}
	return &ClusterEvaluation{JavaObject: *base}, nil
}

// SetModel 设置要评估的已训练聚类器。
func (e *ClusterEvaluation) SetModel(clusterer *Clusterer) error {
	_, err := e.Env().Call(e.JObject(), "setClusterer", clusterer.JObject())
	return err
}

// EvaluateModel 在测试数据集上评估当前聚类器。
func (e *ClusterEvaluation) EvaluateModel(test *dataset.Instances) error {
	_, err := e.Env().Call(e.JObject(), "evaluateClusterer", test.JObject())
	return err
}

// ClusterResults 返回评估结果报告。
func (e *ClusterEvaluation) ClusterResults() (string, error) {
	return java.CallString(e.Env(), e.JObject(), "clusterResultsToString")
}

// EvaluateClusterer 按命令行参数评估聚类器，与WEKA自身的命令行评估入口一致，
// 返回格式化的评估报告。
func EvaluateClusterer(env java.Env, clusterer *Clusterer, args []string) (string, error) {
	result, err := env.StaticCall(clusterEvaluationCN, "evaluateClusterer", clusterer.JObject(), args)
	if err != nil {
		return "", err
	}
	report, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("评估结果不是字符串: %v", result)
	}
	return report, nil
}
