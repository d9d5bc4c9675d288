// Package javatest 提供测试用的脚本化Env实现，记录全部外部调用并按脚本返回结果，
// 使包装层逻辑可以在没有JVM的环境下测试。
package javatest

import (
	"fmt"

	"github.com/fracpete/goweka/pkg/java"
)

// CallRecord 记录一次对Env的调用。
type CallRecord struct {
	Op     string
	Class  string
	Method string
	Target *java.Object
	Args   []interface{}
}

// ReturnFunc 按调用参数计算脚本返回值。
type ReturnFunc func(args []interface{}) (interface{}, error)

// Env 是脚本化的java.Env实现。方法调用的返回值通过Returns设置，
// 键为"类名#方法名"（优先匹配）或方法名。Errors中设置的方法调用直接失败。
// 未脚本化的方法调用返回nil，对应Java的void或null。
type Env struct {
	Records    []CallRecord
	Returns    map[string]interface{}
	Errors     map[string]error
	InstanceOf func(obj *java.Object, classname string) bool
	Closed     bool

	nextID uint64
}

var _ java.Env = &Env{}

func NewEnv() *Env {
	return &Env{
		Returns: map[string]interface{}{},
		Errors:  map[string]error{},
	}
}

// MethodCalls 返回指定方法的全部调用记录。
func (e *Env) MethodCalls(method string) []CallRecord {
	result := make([]CallRecord, 0)
	for _, r := range e.Records {
		if r.Method == method {
			result = append(result, r)
		}
	}
	return result
}

// InstancesOf 返回已创建的指定类的对象数量。
func (e *Env) InstancesOf(classname string) int {
	count := 0
	for _, r := range e.Records {
		if r.Op == "new" && r.Class == classname {
			count++
		}
	}
	return count
}

func (e *Env) record(r CallRecord) {
	e.Records = append(e.Records, r)
}

func (e *Env) newObject(class string) *java.Object {
	e.nextID++
	return java.NewObject(e.nextID, class)
}

func (e *Env) scripted(class, method string, args []interface{}) (interface{}, bool, error) {
	if err, ok := e.Errors[class+"#"+method]; ok {
		return nil, true, err
	}
	if err, ok := e.Errors[method]; ok {
		return nil, true, err
	}
	value, ok := e.Returns[class+"#"+method]
	if !ok {
		value, ok = e.Returns[method]
	}
	if !ok {
		return nil, false, nil
	}
	if fn, isFn := value.(ReturnFunc); isFn {
		result, err := fn(args)
		return result, true, err
	}
	return value, true, nil
}

func (e *Env) MakeInstance(classname string, args ...interface{}) (*java.Object, error) {
	if e.Closed {
		return nil, java.ErrClosed
	}
	e.record(CallRecord{Op: "new", Class: classname, Args: args})
	if err, ok := e.Errors["new#"+classname]; ok {
		return nil, err
	}
	return e.newObject(classname), nil
}

func (e *Env) Call(obj *java.Object, method string, args ...interface{}) (interface{}, error) {
	if e.Closed {
		return nil, java.ErrClosed
	}
	if obj == nil {
		return nil, fmt.Errorf("调用方法%s的目标对象为空", method)
	}
	e.record(CallRecord{Op: "call", Class: obj.Class(), Method: method, Target: obj, Args: args})
	result, ok, err := e.scripted(obj.Class(), method, args)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}
	return nil, nil
}

func (e *Env) StaticCall(classname, method string, args ...interface{}) (interface{}, error) {
	if e.Closed {
		return nil, java.ErrClosed
	}
	e.record(CallRecord{Op: "static", Class: classname, Method: method, Args: args})
	result, _, err := e.scripted(classname, method, args)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Env) MakeObjectArray(length int, classname string) (*java.Object, error) {
	if e.Closed {
		return nil, java.ErrClosed
	}
	e.record(CallRecord{Op: "array", Class: classname, Args: []interface{}{length}})
	return e.newObject("[L" + classname + ";"), nil
}

func (e *Env) SetObjectArrayElement(arr *java.Object, index int, value *java.Object) error {
	if e.Closed {
		return java.ErrClosed
	}
	e.record(CallRecord{Op: "arrayset", Target: arr, Args: []interface{}{index, value}})
	return nil
}

func (e *Env) FindClass(classname string) (*java.Object, error) {
	if e.Closed {
		return nil, java.ErrClosed
	}
	e.record(CallRecord{Op: "class", Class: classname})
	return e.newObject("java.lang.Class"), nil
}

func (e *Env) GetObjectClass(obj *java.Object) (*java.Object, error) {
	if e.Closed {
		return nil, java.ErrClosed
	}
	e.record(CallRecord{Op: "objclass", Target: obj})
	return e.newObject("java.lang.Class"), nil
}

func (e *Env) IsInstanceOf(obj *java.Object, classname string) (bool, error) {
	if e.Closed {
		return false, java.ErrClosed
	}
	e.record(CallRecord{Op: "instanceof", Class: classname, Target: obj})
	if e.InstanceOf != nil {
		return e.InstanceOf(obj, classname), nil
	}
	return true, nil
}

func (e *Env) ClassName(obj *java.Object) (string, error) {
	if e.Closed {
		return "", java.ErrClosed
	}
	return obj.Class(), nil
}

func (e *Env) Close() error {
	e.Closed = true
	return nil
}
