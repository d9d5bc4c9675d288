// Package datagenerators 包装weka.datagenerators下的数据生成器。
// 生成逻辑全部运行在WEKA内部。
package datagenerators

import (
	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/dataset"
	"github.com/fracpete/goweka/pkg/java"
)

const dataGeneratorType = "weka.datagenerators.DataGenerator"

// DataGenerator 包装一个数据生成器对象。
type DataGenerator struct {
	core.OptionHandler
}

func wrap(env java.Env, jobject *java.Object) (*DataGenerator, error) {
	handler, err := core.NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(dataGeneratorType); err != nil {
		return nil, err
	}
	return &DataGenerator{OptionHandler: *handler}, nil
}

// FromClassName 通过类名创建数据生成器。
func FromClassName(env java.Env, classname string) (*DataGenerator, error) {
	jobject, err := core.NewInstance(env, classname)
	if err != nil {
		return nil, err
	}
	return wrap(env, jobject)
}

// FromExisting 采用一个已存在的数据生成器对象。非DataGenerator类型时报错。
func FromExisting(env java.Env, jobject *java.Object) (*DataGenerator, error) {
	return wrap(env, jobject)
}

func (g *DataGenerator) instancesResult(method string) (*dataset.Instances, error) {
	jobject, err := java.CallObject(g.Env(), g.JObject(), method)
	if err != nil {
		return nil, err
	}
	if jobject == nil {
		return nil, nil
	}
	return dataset.FromExisting(g.Env(), jobject)
}

// DefineDataFormat 让生成器计算并返回数据格式。
func (g *DataGenerator) DefineDataFormat() (*dataset.Instances, error) {
	return g.instancesResult("defineDataFormat")
}

// DatasetFormat 返回当前的数据格式。
func (g *DataGenerator) DatasetFormat() (*dataset.Instances, error) {
	return g.instancesResult("getDatasetFormat")
}

// SetDatasetFormat 设置数据格式。
func (g *DataGenerator) SetDatasetFormat(format *dataset.Instances) error {
	_, err := g.Env().Call(g.JObject(), "setDatasetFormat", format.JObject())
	return err
}

// SingleModeFlag 返回生成器是逐条生成（true）还是一次生成全部（false）。
func (g *DataGenerator) SingleModeFlag() (bool, error) {
	return java.CallBool(g.Env(), g.JObject(), "getSingleModeFlag")
}

// NumExamplesAct 返回实际要生成的样本数量。
func (g *DataGenerator) NumExamplesAct() (int, error) {
	return java.CallInt(g.Env(), g.JObject(), "getNumExamplesAct")
}

// GenerateStart 返回生成开始的注释字符串。
func (g *DataGenerator) GenerateStart() (string, error) {
	return java.CallString(g.Env(), g.JObject(), "generateStart")
}

// GenerateExample 逐条模式下生成下一条数据。
func (g *DataGenerator) GenerateExample() (*dataset.Instance, error) {
	jobject, err := java.CallObject(g.Env(), g.JObject(), "generateExample")
	if err != nil {
		return nil, err
	}
	if jobject == nil {
		return nil, nil
	}
	return dataset.InstanceFromExisting(g.Env(), jobject)
}

// GenerateExamples 一次生成完整数据集。
func (g *DataGenerator) GenerateExamples() (*dataset.Instances, error) {
	return g.instancesResult("generateExamples")
}

// GenerateFinish 返回生成结束的注释字符串。
func (g *DataGenerator) GenerateFinish() (string, error) {
	return java.CallString(g.Env(), g.JObject(), "generateFinish")
}

// MakeData 按命令行参数驱动生成器产出数据，与WEKA自身的命令行入口一致。
func MakeData(env java.Env, generator *DataGenerator, args []string) error {
	_, err := env.StaticCall(dataGeneratorType, "makeData", generator.JObject(), args)
	return err
}
