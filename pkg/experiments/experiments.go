// Package experiments 包装WEKA的实验编排体系：实验对象、结果生成器配置、
// 结果矩阵与显著性检验工具。交叉验证、随机划分与统计计算全部运行在WEKA内部，
// 这里只负责配置翻译与三阶段生命周期的驱动。
package experiments

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fracpete/goweka/pkg/classifiers"
	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/java"
	"github.com/pkg/errors"
)

const experimentType = "weka.experiment.Experiment"

// ErrNotImplemented 表示实验没有结果生成器配置，无法完成Setup。
var ErrNotImplemented = errors.New("未提供结果生成器配置")

// Experiment 包装一个weka.experiment.Experiment对象。
type Experiment struct {
	core.OptionHandler
}

func wrapExperiment(env java.Env, jobject *java.Object) (*Experiment, error) {
	handler, err := core.NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(experimentType); err != nil {
		return nil, err
	}
	return &Experiment{OptionHandler: *handler}, nil
}

// FromClassName 通过类名创建实验对象。
func FromClassName(env java.Env, classname string) (*Experiment, error) {
	jobject, err := core.NewInstance(env, classname)
	if err != nil {
		return nil, err
	}
	return wrapExperiment(env, jobject)
}

// FromExisting 采用一个已存在的实验对象。非Experiment类型时报错。
func FromExisting(env java.Env, jobject *java.Object) (*Experiment, error) {
	return wrapExperiment(env, jobject)
}

// Load 从磁盘读取实验定义。文件格式由WEKA自身的序列化机制决定。
func Load(env java.Env, filename string) (*Experiment, error) {
	result, err := env.StaticCall(experimentType, "read", filename)
	if err != nil {
		return nil, errors.Wrap(err, "读取实验定义"+filename+"出错")
	}
	jobject, ok := result.(*java.Object)
	if !ok {
		return nil, fmt.Errorf("读取实验定义的返回值不是对象: %v", result)
	}
	return wrapExperiment(env, jobject)
}

// Save 把实验定义写入磁盘。文件格式由WEKA自身的序列化机制决定。
func Save(env java.Env, filename string, experiment *Experiment) error {
	_, err := env.StaticCall(experimentType, "write", filename, experiment.JObject())
	if err != nil {
		return errors.Wrap(err, "保存实验定义"+filename+"出错")
	}
	return nil
}

// State 是简单实验的生命周期状态。
type State string

const (
	StateUnconfigured  = State("unconfigured")
	StateConfigured    = State("configured")
	StateInitialized   = State("initialized")
	StateRan           = State("ran")
	StatePostProcessed = State("postprocessed")
)

// ClassifierSpec 指定实验中的一个分类器：已配置的对象或命令行形式，二选一，
// 对象优先。
type ClassifierSpec struct {
	Classifier  *classifiers.Classifier
	Commandline string
}

// ClassifierByObject 用已配置的分类器对象构造ClassifierSpec。
func ClassifierByObject(classifier *classifiers.Classifier) ClassifierSpec {
	return ClassifierSpec{Classifier: classifier}
}

// ClassifierByCommandline 用"类名 选项..."形式的命令行构造ClassifierSpec。
func ClassifierByCommandline(cmdline string) ClassifierSpec {
	return ClassifierSpec{Commandline: cmdline}
}

// Config 是简单实验的全部配置。
type Config struct {
	Classification bool             // true为分类实验，false为回归实验
	Runs           int              // 运行次数，至少为1
	Datasets       []string         // 数据集文件路径，按顺序使用
	Classifiers    []ClassifierSpec // 参与实验的分类器，按顺序使用
	Result         string           // 结果输出文件。扩展名.arff或.csv决定监听器类型
	Producer       ResultProducerConfig
}

// SimpleExperiment 驱动一个简单实验的完整生命周期：
// Setup把配置翻译为外部实验对象（幂等，只绑定一次），
// Run顺序执行初始化、运行、后处理三个阶段，任一阶段出错立即中止并向上传播。
type SimpleExperiment struct {
	env    java.Env
	logger *log.Logger

	classification bool
	runs           int
	datasets       []string
	specs          []ClassifierSpec
	result         string
	producer       ResultProducerConfig

	jobject *java.Object
	state   State
}

// NewSimpleExperiment 校验配置并创建实验。所有前置条件检查在这里完成，
// 不会创建任何外部对象，校验失败不留下外部状态。
func NewSimpleExperiment(env java.Env, config *Config) (*SimpleExperiment, error) {
	if config.Runs < 1 {
		return nil, fmt.Errorf("运行次数至少为1，当前为%d", config.Runs)
	}
	if len(config.Datasets) == 0 {
		return nil, fmt.Errorf("未提供数据集")
	}
	if len(config.Classifiers) == 0 {
		return nil, fmt.Errorf("未提供分类器")
	}
	if config.Result == "" {
		return nil, fmt.Errorf("未提供结果输出文件名")
	}

	datasets := make([]string, len(config.Datasets))
	copy(datasets, config.Datasets)
	specs := make([]ClassifierSpec, len(config.Classifiers))
	copy(specs, config.Classifiers)

	return &SimpleExperiment{
		env:            env,
		logger:         log.New(os.Stdout, "experiments: ", log.LstdFlags|log.Lmsgprefix),
		classification: config.Classification,
		runs:           config.Runs,
		datasets:       datasets,
		specs:          specs,
		result:         config.Result,
		producer:       config.Producer,
		state:          StateUnconfigured,
	}, nil
}

// NewSimpleCrossValidationExperiment 创建交叉验证实验。
func NewSimpleCrossValidationExperiment(env java.Env, datasets []string, specs []ClassifierSpec,
	classification bool, runs, folds int, result string) (*SimpleExperiment, error) {
	if folds < 2 {
		return nil, fmt.Errorf("交叉验证折数至少为2，当前为%d", folds)
	}
	return NewSimpleExperiment(env, &Config{
		Classification: classification,
		Runs:           runs,
		Datasets:       datasets,
		Classifiers:    specs,
		Result:         result,
		Producer:       &CrossValidationConfig{Folds: folds},
	})
}

// NewSimpleRandomSplitExperiment 创建随机划分实验。percentage为训练集百分比，
// 开区间(0,100)。
func NewSimpleRandomSplitExperiment(env java.Env, datasets []string, specs []ClassifierSpec,
	classification bool, runs int, percentage float64, preserveOrder bool, result string) (*SimpleExperiment, error) {
	if percentage <= 0 {
		return nil, fmt.Errorf("训练集百分比必须大于0，当前为%v", percentage)
	}
	if percentage >= 100 {
		return nil, fmt.Errorf("训练集百分比必须小于100，当前为%v", percentage)
	}
	return NewSimpleExperiment(env, &Config{
		Classification: classification,
		Runs:           runs,
		Datasets:       datasets,
		Classifiers:    specs,
		Result:         result,
		Producer:       &RandomSplitConfig{Percentage: percentage, PreserveOrder: preserveOrder},
	})
}

// State 返回实验当前的生命周期状态。
func (e *SimpleExperiment) State() State {
	return e.state
}

// JObject 返回绑定的外部实验对象。Setup之前为nil。
func (e *SimpleExperiment) JObject() *java.Object {
	return e.jobject
}

// Experiment 返回内部实验对象的包装。尚未Setup时返回nil。
func (e *SimpleExperiment) Experiment() (*Experiment, error) {
	if e.jobject == nil {
		return nil, nil
	}
	return FromExisting(e.env, e.jobject)
}

// Setup 构造外部实验对象并把全部配置翻译过去。重复调用是无操作，
// 外部对象只绑定一次。
func (e *SimpleExperiment) Setup() error {
	if e.jobject != nil {
		return nil
	}
	if e.producer == nil {
		return ErrNotImplemented
	}

	jobject, err := core.NewInstance(e.env, experimentType)
	if err != nil {
		return err
	}

	// 基本参数：属性迭代器、运行区间[1, runs]
	empty, err := e.env.MakeObjectArray(0, "weka.classifiers.Classifier")
	if err != nil {
		return errors.Wrap(err, "创建空分类器数组出错")
	}
	if _, err := e.env.Call(jobject, "setPropertyArray", empty); err != nil {
		return err
	}
	if _, err := e.env.Call(jobject, "setUsePropertyIterator", true); err != nil {
		return err
	}
	if _, err := e.env.Call(jobject, "setRunLower", 1); err != nil {
		return err
	}
	if _, err := e.env.Call(jobject, "setRunUpper", e.runs); err != nil {
		return err
	}

	// 结果生成器与属性路径
	producer, propertyPath, err := e.producer.Configure(e.env, e.classification)
	if err != nil {
		return err
	}
	if _, err := e.env.Call(jobject, "setResultProducer", producer); err != nil {
		return err
	}
	if _, err := e.env.Call(jobject, "setPropertyPath", propertyPath); err != nil {
		return err
	}

	// 分类器数组：已配置对象直接使用，命令行形式先解析
	array, err := e.env.MakeObjectArray(len(e.specs), "weka.classifiers.Classifier")
	if err != nil {
		return errors.Wrap(err, "创建分类器数组出错")
	}
	for i, spec := range e.specs {
		element := spec.Classifier
		if element == nil {
			element, err = classifiers.FromCommandline(e.env, spec.Commandline)
			if err != nil {
				return errors.Wrap(err, "解析分类器命令行出错: "+spec.Commandline)
			}
		}
		if err := e.env.SetObjectArrayElement(array, i, element.JObject()); err != nil {
			return err
		}
	}
	if _, err := e.env.Call(jobject, "setPropertyArray", array); err != nil {
		return err
	}

	// 数据集：按顺序组成文件列表模型
	list, err := core.NewInstance(e.env, "javax.swing.DefaultListModel")
	if err != nil {
		return err
	}
	for _, dataset := range e.datasets {
		file, err := e.env.MakeInstance("java.io.File", dataset)
		if err != nil {
			return errors.Wrap(err, "创建数据集文件对象出错: "+dataset)
		}
		if _, err := e.env.Call(list, "addElement", file); err != nil {
			return err
		}
	}
	if _, err := e.env.Call(jobject, "setDatasets", list); err != nil {
		return err
	}

	// 结果监听器：由输出文件扩展名决定类型
	listener, err := e.makeResultListener()
	if err != nil {
		return err
	}
	resultFile, err := e.env.MakeInstance("java.io.File", e.result)
	if err != nil {
		return errors.Wrap(err, "创建结果文件对象出错: "+e.result)
	}
	if _, err := e.env.Call(listener, "setOutputFile", resultFile); err != nil {
		return err
	}
	if _, err := e.env.Call(jobject, "setResultListener", listener); err != nil {
		return err
	}

	e.jobject = jobject
	e.state = StateConfigured
	return nil
}

// makeResultListener 按扩展名选择监听器：.arff为实例监听器，.csv为表格监听器，
// 其余作为配置错误。
func (e *SimpleExperiment) makeResultListener() (*java.Object, error) {
	lower := strings.ToLower(e.result)
	switch {
	case strings.HasSuffix(lower, ".arff"):
		return core.NewInstance(e.env, "weka.experiment.InstancesResultListener")
	case strings.HasSuffix(lower, ".csv"):
		return core.NewInstance(e.env, "weka.experiment.CSVResultListener")
	default:
		return nil, fmt.Errorf("无法处理的结果输出格式: %s", e.result)
	}
}

// Run 顺序执行实验的三个阶段。三个调用全部阻塞，任一出错立即中止，
// 错误原样向上传播，不做恢复。
func (e *SimpleExperiment) Run() error {
	if e.jobject == nil {
		return fmt.Errorf("实验尚未配置，需要先调用Setup")
	}

	e.logger.Println("初始化实验中")
	if _, err := e.env.Call(e.jobject, "initialize"); err != nil {
		return err
	}
	e.state = StateInitialized

	e.logger.Println("运行实验中")
	if _, err := e.env.Call(e.jobject, "runExperiment"); err != nil {
		return err
	}
	e.state = StateRan

	e.logger.Println("实验后处理中")
	if _, err := e.env.Call(e.jobject, "postProcess"); err != nil {
		return err
	}
	e.state = StatePostProcessed
	return nil
}
