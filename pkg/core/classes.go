// Package core 提供WEKA对象的公共包装基础：对象持有、类型检查、选项处理，
// 以及weka.core下常用工具类的包装。
package core

import (
	"fmt"

	"github.com/fracpete/goweka/pkg/java"
	"github.com/pkg/errors"
)

// ErrTypeMismatch 表示采用的外部对象不是要求的Java类型。
var ErrTypeMismatch = errors.New("对象类型不符合要求")

// JavaObject 持有一个外部Java对象的引用。引用归包装器独占，
// 生命周期与创建它的JVM会话一致。
type JavaObject struct {
	env     java.Env
	jobject *java.Object
}

// NewJavaObject 包装一个已存在的外部对象。
func NewJavaObject(env java.Env, jobject *java.Object) (*JavaObject, error) {
	if jobject == nil {
		return nil, fmt.Errorf("外部对象引用为空")
	}
	return &JavaObject{env: env, jobject: jobject}, nil
}

// NewInstance 通过类名创建外部对象。
func NewInstance(env java.Env, classname string) (*java.Object, error) {
	obj, err := env.MakeInstance(classname)
	if err != nil {
		return nil, errors.Wrap(err, "创建"+classname+"实例出错")
	}
	return obj, nil
}

func (o *JavaObject) Env() java.Env {
	return o.env
}

// JObject 返回底层的外部对象引用。
func (o *JavaObject) JObject() *java.Object {
	return o.jobject
}

// Classname 返回外部对象实际的Java类名。
func (o *JavaObject) Classname() (string, error) {
	return o.env.ClassName(o.jobject)
}

// EnforceType 检查对象是否为classname类型，不是则返回ErrTypeMismatch。
func (o *JavaObject) EnforceType(classname string) error {
	ok, err := o.env.IsInstanceOf(o.jobject, classname)
	if err != nil {
		return errors.Wrap(err, "检查对象类型出错")
	}
	if !ok {
		actual, _ := o.env.ClassName(o.jobject)
		return errors.Wrapf(ErrTypeMismatch, "对象%s不是%s", actual, classname)
	}
	return nil
}

// ToString 调用对象的toString方法。
func (o *JavaObject) ToString() (string, error) {
	return java.CallString(o.env, o.jobject, "toString")
}

// OptionHandler 包装实现weka.core.OptionHandler的对象，提供选项读写。
type OptionHandler struct {
	JavaObject
}

func NewOptionHandler(env java.Env, jobject *java.Object) (*OptionHandler, error) {
	base, err := NewJavaObject(env, jobject)
	if err != nil {
		return nil, err
	}
	return &OptionHandler{JavaObject: *base}, nil
}

// SetOptions 设置对象的命令行选项。
func (h *OptionHandler) SetOptions(options []string) error {
	_, err := h.env.Call(h.jobject, "setOptions", options)
	return err
}

// Options 返回对象当前的命令行选项。
func (h *OptionHandler) Options() ([]string, error) {
	return java.CallStrings(h.env, h.jobject, "getOptions")
}

// ToCommandline 返回类名加选项的完整命令行形式。
func (h *OptionHandler) ToCommandline() (string, error) {
	classname, err := h.Classname()
	if err != nil {
		return "", err
	}
	options, err := h.Options()
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return classname, nil
	}
	return classname + " " + JoinOptions(options), nil
}

// Capabilities 包装weka.core.Capabilities能力描述对象。
type Capabilities struct {
	JavaObject
}

func NewCapabilities(env java.Env, jobject *java.Object) (*Capabilities, error) {
	base, err := NewJavaObject(env, jobject)
	if err != nil {
		return nil, err
	}
	return &Capabilities{JavaObject: *base}, nil
}

// Range 包装weka.core.Range区间描述对象。
type Range struct {
	JavaObject
}

// NewRange 通过区间字符串（如"1,3-5"）创建Range对象。
func NewRange(env java.Env, ranges string) (*Range, error) {
	jobject, err := NewInstance(env, "weka.core.Range")
	if err != nil {
		return nil, err
	}
	if _, err := env.Call(jobject, "setRanges", ranges); err != nil {
		return nil, errors.Wrap(err, "设置区间字符串出错")
	}
	return &Range{JavaObject: JavaObject{env: env, jobject: jobject}}, nil
}
