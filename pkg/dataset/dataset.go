// Package dataset 包装weka.core下的数据集对象。绑定层只暴露自身需要的表面：
// 属性查找与下标，数据格式本身由WEKA持有，这里不做解析。
package dataset

import (
	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/java"
)

// Instances 包装weka.core.Instances数据集对象。
type Instances struct {
	core.JavaObject
}

// FromExisting 采用一个已存在的数据集对象。非Instances类型时报错。
func FromExisting(env java.Env, jobject *java.Object) (*Instances, error) {
	base, err := core.NewJavaObject(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := base.EnforceType("weka.core.Instances"); err != nil {
		return nil, err
	}
	return &Instances{JavaObject: *base}, nil
}

func (i *Instances) NumAttributes() (int, error) {
	return java.CallInt(i.Env(), i.JObject(), "numAttributes")
}

func (i *Instances) NumInstances() (int, error) {
	return java.CallInt(i.Env(), i.JObject(), "numInstances")
}

// AttributeByName 按名称查找属性。属性不存在时返回nil而不是错误，
// 由调用方决定缺失属性的语义。
func (i *Instances) AttributeByName(name string) (*Attribute, error) {
	jobject, err := java.CallObject(i.Env(), i.JObject(), "attribute", name)
	if err != nil {
		return nil, err
	}
	if jobject == nil {
		return nil, nil
	}
	return newAttribute(i.Env(), jobject)
}

// Attribute 返回指定下标的属性。
func (i *Instances) Attribute(index int) (*Attribute, error) {
	jobject, err := java.CallObject(i.Env(), i.JObject(), "attribute", index)
	if err != nil {
		return nil, err
	}
	return newAttribute(i.Env(), jobject)
}

// Instance 包装weka.core.Instance单条数据对象。
type Instance struct {
	core.JavaObject
}

// InstanceFromExisting 采用一个已存在的单条数据对象。
func InstanceFromExisting(env java.Env, jobject *java.Object) (*Instance, error) {
	base, err := core.NewJavaObject(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := base.EnforceType("weka.core.Instance"); err != nil {
		return nil, err
	}
	return &Instance{JavaObject: *base}, nil
}

// Attribute 包装weka.core.Attribute属性对象。
type Attribute struct {
	core.JavaObject
}

func newAttribute(env java.Env, jobject *java.Object) (*Attribute, error) {
	base, err := core.NewJavaObject(env, jobject)
	if err != nil {
		return nil, err
	}
	return &Attribute{JavaObject: *base}, nil
}

// Name 返回属性名。
func (a *Attribute) Name() (string, error) {
	return java.CallString(a.Env(), a.JObject(), "name")
}

// Index 返回属性的0起始下标。
func (a *Attribute) Index() (int, error) {
	return java.CallInt(a.Env(), a.JObject(), "index")
}
