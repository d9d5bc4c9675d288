package experiments

import (
	"testing"

	"github.com/fracpete/goweka/pkg/java"
	"github.com/fracpete/goweka/pkg/java/javatest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func validDatasets() []string {
	return []string{"a.arff", "b.arff"}
}

func validSpecs() []ClassifierSpec {
	return []ClassifierSpec{ClassifierByCommandline("weka.classifiers.trees.J48")}
}

func TestCrossValidationConstructorValidation(t *testing.T) {
	env := javatest.NewEnv()

	_, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 0, 10, "out.csv")
	assert.Error(t, err)

	_, err = NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 1, "out.csv")
	assert.Error(t, err)

	_, err = NewSimpleCrossValidationExperiment(env, []string{}, validSpecs(), true, 10, 10, "out.csv")
	assert.Error(t, err)

	_, err = NewSimpleCrossValidationExperiment(env, validDatasets(), []ClassifierSpec{}, true, 10, 10, "out.csv")
	assert.Error(t, err)

	_, err = NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "")
	assert.Error(t, err)

	// 校验失败时不允许留下任何外部状态
	assert.Equal(t, 0, len(env.Records))
}

func TestRandomSplitConstructorValidation(t *testing.T) {
	env := javatest.NewEnv()

	_, err := NewSimpleRandomSplitExperiment(env, validDatasets(), validSpecs(), true, 10, 0, false, "out.csv")
	assert.Error(t, err)

	_, err = NewSimpleRandomSplitExperiment(env, validDatasets(), validSpecs(), true, 10, 100, false, "out.csv")
	assert.Error(t, err)

	_, err = NewSimpleRandomSplitExperiment(env, validDatasets(), validSpecs(), true, 0, 66.6, false, "out.csv")
	assert.Error(t, err)

	assert.Equal(t, 0, len(env.Records))

	experiment, err := NewSimpleRandomSplitExperiment(env, validDatasets(), validSpecs(), true, 10, 66.6, false, "out.csv")
	assert.NoError(t, err)
	assert.Equal(t, StateUnconfigured, experiment.State())
}

func TestSetupIdempotent(t *testing.T) {
	env := javatest.NewEnv()

	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.csv")
	assert.NoError(t, err)

	assert.NoError(t, experiment.Setup())
	first := experiment.JObject()
	assert.NotNil(t, first)

	assert.NoError(t, experiment.Setup())
	assert.Equal(t, first, experiment.JObject())
	assert.Equal(t, 1, env.InstancesOf("weka.experiment.Experiment"))
}

func TestSetupResultListenerSelection(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.arff")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())
	assert.Equal(t, 1, env.InstancesOf("weka.experiment.InstancesResultListener"))

	env = javatest.NewEnv()
	experiment, err = NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.csv")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())
	assert.Equal(t, 1, env.InstancesOf("weka.experiment.CSVResultListener"))

	env = javatest.NewEnv()
	experiment, err = NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.txt")
	assert.NoError(t, err)
	err = experiment.Setup()
	assert.Error(t, err)
	assert.Nil(t, experiment.JObject())
	assert.Equal(t, StateUnconfigured, experiment.State())
}

func TestSetupWiring(t *testing.T) {
	env := javatest.NewEnv()
	env.Returns["getClassifier"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		return java.NewObject(200, "weka.classifiers.rules.ZeroR"), nil
	})

	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(),
		[]ClassifierSpec{ClassifierByCommandline("weka.classifiers.trees.J48 -C 0.25")}, true, 10, 10, "out.csv")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())

	// 运行区间与属性迭代器
	assert.Equal(t, 1, env.MethodCalls("setRunLower")[0].Args[0])
	assert.Equal(t, 10, env.MethodCalls("setRunUpper")[0].Args[0])
	assert.Equal(t, true, env.MethodCalls("setUsePropertyIterator")[0].Args[0])

	// 结果生成器
	assert.Equal(t, 1, env.InstancesOf("weka.experiment.CrossValidationResultProducer"))
	assert.Equal(t, 1, env.InstancesOf("weka.experiment.ClassifierSplitEvaluator"))
	assert.Equal(t, 10, env.MethodCalls("setNumFolds")[0].Args[0])
	assert.Equal(t, 1, len(env.MethodCalls("setResultProducer")))
	assert.Equal(t, 1, len(env.MethodCalls("setPropertyPath")))

	// 两级属性路径
	assert.Equal(t, 2, env.InstancesOf("weka.experiment.PropertyNode"))
	assert.Equal(t, 2, env.InstancesOf("java.beans.PropertyDescriptor"))

	// 命令行形式的分类器被解析并配置
	assert.Equal(t, 1, env.InstancesOf("weka.classifiers.trees.J48"))
	setOptions := env.MethodCalls("setOptions")
	assert.Equal(t, 1, len(setOptions))
	assert.Equal(t, []string{"-C", "0.25"}, setOptions[0].Args[0])

	// 数据集按顺序进入列表模型
	files := make([]string, 0)
	for _, record := range env.Records {
		if record.Op == "new" && record.Class == "java.io.File" {
			files = append(files, record.Args[0].(string))
		}
	}
	assert.Equal(t, []string{"a.arff", "b.arff", "out.csv"}, files)
	assert.Equal(t, 2, len(env.MethodCalls("addElement")))
	assert.Equal(t, 1, len(env.MethodCalls("setDatasets")))
	assert.Equal(t, 1, len(env.MethodCalls("setOutputFile")))
	assert.Equal(t, 1, len(env.MethodCalls("setResultListener")))
}

func TestSetupRegressionUsesRegressionEvaluator(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), false, 10, 10, "out.csv")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())

	assert.Equal(t, 1, env.InstancesOf("weka.experiment.RegressionSplitEvaluator"))
	assert.Equal(t, 0, env.InstancesOf("weka.experiment.ClassifierSplitEvaluator"))
}

func TestSetupRandomSplitWiring(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleRandomSplitExperiment(env, validDatasets(), validSpecs(), true, 10, 66.6, false, "out.arff")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())

	assert.Equal(t, 1, env.InstancesOf("weka.experiment.RandomSplitResultProducer"))
	assert.Equal(t, true, env.MethodCalls("setRandomizeData")[0].Args[0])
	assert.Equal(t, 66.6, env.MethodCalls("setTrainPercent")[0].Args[0])
}

func TestSetupRandomSplitPreserveOrder(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleRandomSplitExperiment(env, validDatasets(), validSpecs(), true, 10, 66.6, true, "out.arff")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())

	assert.Equal(t, false, env.MethodCalls("setRandomizeData")[0].Args[0])
}

func TestSetupWithoutProducer(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleExperiment(env, &Config{
		Classification: true,
		Runs:           10,
		Datasets:       validDatasets(),
		Classifiers:    validSpecs(),
		Result:         "out.csv",
	})
	assert.NoError(t, err)

	err = experiment.Setup()
	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.Nil(t, experiment.JObject())
}

func TestRunPhases(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.csv")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())
	assert.NoError(t, experiment.Run())

	assert.Equal(t, StatePostProcessed, experiment.State())
	assert.Equal(t, 1, len(env.MethodCalls("initialize")))
	assert.Equal(t, 1, len(env.MethodCalls("runExperiment")))
	assert.Equal(t, 1, len(env.MethodCalls("postProcess")))

	// 三个阶段按顺序执行
	order := make([]string, 0)
	for _, record := range env.Records {
		switch record.Method {
		case "initialize", "runExperiment", "postProcess":
			order = append(order, record.Method)
		}
	}
	assert.Equal(t, []string{"initialize", "runExperiment", "postProcess"}, order)
}

func TestRunAbortsOnPhaseError(t *testing.T) {
	env := javatest.NewEnv()
	env.Errors["runExperiment"] = errors.New("java.lang.Exception: 数据集a.arff不存在")

	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.csv")
	assert.NoError(t, err)
	assert.NoError(t, experiment.Setup())

	err = experiment.Run()
	assert.Error(t, err)
	assert.Equal(t, "java.lang.Exception: 数据集a.arff不存在", err.Error())
	assert.Equal(t, StateInitialized, experiment.State())
	assert.Equal(t, 0, len(env.MethodCalls("postProcess")))
}

func TestRunWithoutSetup(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.csv")
	assert.NoError(t, err)

	assert.Error(t, experiment.Run())
	assert.Equal(t, 0, len(env.MethodCalls("initialize")))
}

func TestExperimentAccessor(t *testing.T) {
	env := javatest.NewEnv()
	experiment, err := NewSimpleCrossValidationExperiment(env, validDatasets(), validSpecs(), true, 10, 10, "out.csv")
	assert.NoError(t, err)

	wrapped, err := experiment.Experiment()
	assert.NoError(t, err)
	assert.Nil(t, wrapped)

	assert.NoError(t, experiment.Setup())
	wrapped, err = experiment.Experiment()
	assert.NoError(t, err)
	assert.Equal(t, experiment.JObject(), wrapped.JObject())
}

func TestLoadSave(t *testing.T) {
	env := javatest.NewEnv()
	env.Returns["weka.experiment.Experiment#read"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		return java.NewObject(300, "weka.experiment.Experiment"), nil
	})

	experiment, err := Load(env, "exp.ser")
	assert.NoError(t, err)
	assert.Equal(t, "weka.experiment.Experiment", experiment.JObject().Class())

	assert.NoError(t, Save(env, "exp2.ser", experiment))
	statics := env.MethodCalls("write")
	assert.Equal(t, 1, len(statics))
	assert.Equal(t, "exp2.ser", statics[0].Args[0])
	assert.Equal(t, experiment.JObject(), statics[0].Args[1])
}
