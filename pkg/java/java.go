package java

import (
	"fmt"
)

// Object 表示由JVM网关持有的一个Java对象的引用。引用本身不含任何数据，
// 所有操作必须通过创建它的Env执行。Env关闭后，所有引用随之失效。
// Object只能作为引用使用，不能当作值复制后脱离Env独立存在。
type Object struct {
	id    uint64
	class string
}

// ID 返回网关侧的对象编号。
func (o *Object) ID() uint64 {
	return o.id
}

// Class 返回对象创建时记录的Java类名，形式如weka.clusterers.SimpleKMeans。
func (o *Object) Class() string {
	return o.class
}

func (o *Object) String() string {
	if o == nil {
		return "null"
	}
	return fmt.Sprintf("%s@%d", o.class, o.id)
}

// NewObject 构造一个指向网关对象的引用。一般仅由Env实现与测试代码使用。
func NewObject(id uint64, class string) *Object {
	return &Object{id: id, class: class}
}

// Env 是对JVM的外部调用能力。所有Java对象的创建与方法调用都经过Env完成。
// 参数与返回值的类型映射为：nil对应null，bool对应boolean，int对应int，
// float64对应double，string对应String，[]string对应String[]，
// *Object对应任意对象引用。
//
// Env不支持并发调用，调用方需要自行串行化。所有调用阻塞直到JVM返回，
// 没有超时与取消机制。
type Env interface {
	// MakeInstance 通过类名与构造参数创建Java对象。
	MakeInstance(classname string, args ...interface{}) (*Object, error)

	// Call 调用对象的实例方法。
	Call(obj *Object, method string, args ...interface{}) (interface{}, error)

	// StaticCall 调用类的静态方法。
	StaticCall(classname, method string, args ...interface{}) (interface{}, error)

	// MakeObjectArray 创建元素类型为classname的对象数组。
	MakeObjectArray(length int, classname string) (*Object, error)

	// SetObjectArrayElement 设置对象数组index位置的元素。
	SetObjectArrayElement(arr *Object, index int, value *Object) error

	// FindClass 返回类名对应的java.lang.Class对象。
	FindClass(classname string) (*Object, error)

	// GetObjectClass 返回对象所属的java.lang.Class对象。
	GetObjectClass(obj *Object) (*Object, error)

	// IsInstanceOf 判断对象是否为classname类型（含子类与接口实现）。
	IsInstanceOf(obj *Object, classname string) (bool, error)

	// ClassName 返回对象实际的Java类名。
	ClassName(obj *Object) (string, error)

	// Close 关闭与JVM的连接。之后任何调用都会返回ErrClosed。
	Close() error
}

// CallString 调用返回值为String的方法，并做类型检查。
func CallString(env Env, obj *Object, method string, args ...interface{}) (string, error) {
	result, err := env.Call(obj, method, args...)
	if err != nil {
		return "", err
	}
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("方法%s的返回值不是字符串: %v", method, result)
	}
	return s, nil
}

// CallObject 调用返回值为对象引用的方法，并做类型检查。返回的引用可能为nil，
// 对应Java的null返回值。
func CallObject(env Env, obj *Object, method string, args ...interface{}) (*Object, error) {
	result, err := env.Call(obj, method, args...)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	o, ok := result.(*Object)
	if !ok {
		return nil, fmt.Errorf("方法%s的返回值不是对象引用: %v", method, result)
	}
	return o, nil
}

// CallDouble 调用返回值为double的方法，并做类型检查。
func CallDouble(env Env, obj *Object, method string, args ...interface{}) (float64, error) {
	result, err := env.Call(obj, method, args...)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("方法%s的返回值不是数字: %v", method, result)
	}
}

// CallBool 调用返回值为boolean的方法，并做类型检查。
func CallBool(env Env, obj *Object, method string, args ...interface{}) (bool, error) {
	result, err := env.Call(obj, method, args...)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("方法%s的返回值不是布尔值: %v", method, result)
	}
	return b, nil
}

// CallStrings 调用返回值为String[]的方法，并做类型检查。
func CallStrings(env Env, obj *Object, method string, args ...interface{}) ([]string, error) {
	result, err := env.Call(obj, method, args...)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	s, ok := result.([]string)
	if !ok {
		return nil, fmt.Errorf("方法%s的返回值不是字符串数组: %v", method, result)
	}
	return s, nil
}

// CallInt 调用返回值为int的方法，并做类型检查。
func CallInt(env Env, obj *Object, method string, args ...interface{}) (int, error) {
	result, err := env.Call(obj, method, args...)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("方法%s的返回值不是整数: %v", method, result)
	}
}
