// Package classifiers 包装weka.classifiers下的分类器对象。
// 绑定层只暴露实验编排所需的表面：构造、选项配置与基本的训练预测。
package classifiers

import (
	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/dataset"
	"github.com/fracpete/goweka/pkg/java"
)

const classifierType = "weka.classifiers.Classifier"

// Classifier 包装一个分类器对象。
type Classifier struct {
	core.OptionHandler
}

func wrap(env java.Env, jobject *java.Object) (*Classifier, error) {
	handler, err := core.NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(classifierType); err != nil {
		return nil, err
	}
	return &Classifier{OptionHandler: *handler}, nil
}

// FromClassName 通过类名创建分类器。
func FromClassName(env java.Env, classname string) (*Classifier, error) {
	jobject, err := core.NewInstance(env, classname)
	if err != nil {
		return nil, err
	}
	return wrap(env, jobject)
}

// FromExisting 采用一个已存在的分类器对象。非Classifier类型时报错。
func FromExisting(env java.Env, jobject *java.Object) (*Classifier, error) {
	return wrap(env, jobject)
}

// FromCommandline 按"类名 选项..."形式的命令行创建并配置分类器。
func FromCommandline(env java.Env, cmdline string) (*Classifier, error) {
	handler, err := core.FromCommandline(env, cmdline)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(classifierType); err != nil {
		return nil, err
	}
	return &Classifier{OptionHandler: *handler}, nil
}

// BuildClassifier 用数据训练分类器，训练结果保存在外部对象中。
func (c *Classifier) BuildClassifier(data *dataset.Instances) error {
	_, err := c.Env().Call(c.JObject(), "buildClassifier", data.JObject())
	return err
}

// ClassifyInstance 预测单条数据的类别。
func (c *Classifier) ClassifyInstance(inst *dataset.Instance) (float64, error) {
	return java.CallDouble(c.Env(), c.JObject(), "classifyInstance", inst.JObject())
}
