package java

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed 表示Env已经关闭，所有对象引用已失效。
var ErrClosed = errors.New("与JVM的连接已关闭")

// 网关协议的操作类型
const (
	opNew        = "new"
	opCall       = "call"
	opStatic     = "static"
	opArray      = "array"
	opArraySet   = "arrayset"
	opFindClass  = "class"
	opObjClass   = "objclass"
	opInstanceOf = "instanceof"
	opClassName  = "classname"
	opShutdown   = "shutdown"
)

// 协议值的类型标记
const (
	typeNull    = "null"
	typeBoolean = "boolean"
	typeInt     = "int"
	typeDouble  = "double"
	typeString  = "string"
	typeStrings = "strings"
	typeObject  = "object"
)

// wireValue 是参数与返回值在协议上的表示。基本类型放在Value中，
// 对象引用使用Object编号与Class类名。
type wireValue struct {
	Type   string          `json:"type"`
	Value  json.RawMessage `json:"value,omitempty"`
	Object uint64          `json:"object,omitempty"`
	Class  string          `json:"class,omitempty"`
}

type wireRequest struct {
	ID     uint64      `json:"id"`
	Op     string      `json:"op"`
	Class  string      `json:"class,omitempty"`
	Method string      `json:"method,omitempty"`
	Target uint64      `json:"target,omitempty"`
	Index  int         `json:"index,omitempty"`
	Length int         `json:"length,omitempty"`
	Args   []wireValue `json:"args,omitempty"`
}

type wireResponse struct {
	ID     uint64     `json:"id"`
	Error  string     `json:"error,omitempty"`
	Result *wireValue `json:"result,omitempty"`
}

// gatewayEnv 通过行分隔的JSON协议与JVM网关进程通信。每个请求同步等待应答，
// 内部用互斥锁串行化，慢调用会阻塞所有后续调用。
type gatewayEnv struct {
	mu     sync.Mutex
	enc    *json.Encoder
	dec    *json.Decoder
	nextID uint64
	closed bool
}

var _ Env = &gatewayEnv{}

// NewGatewayEnv 在一对网关进程的输入输出流上建立Env。r为网关的输出，
// w为网关的输入。
func NewGatewayEnv(r io.Reader, w io.Writer) Env {
	return &gatewayEnv{
		enc: json.NewEncoder(w),
		dec: json.NewDecoder(r),
	}
}

func encodeValue(arg interface{}) (wireValue, error) {
	switch v := arg.(type) {
	case nil:
		return wireValue{Type: typeNull}, nil
	case bool:
		raw, _ := json.Marshal(v)
		return wireValue{Type: typeBoolean, Value: raw}, nil
	case int:
		return wireValue{Type: typeInt, Value: json.RawMessage(strconv.Itoa(v))}, nil
	case int64:
		return wireValue{Type: typeInt, Value: json.RawMessage(strconv.FormatInt(v, 10))}, nil
	case float64:
		raw, _ := json.Marshal(v)
		return wireValue{Type: typeDouble, Value: raw}, nil
	case string:
		raw, _ := json.Marshal(v)
		return wireValue{Type: typeString, Value: raw}, nil
	case []string:
		raw, _ := json.Marshal(v)
		return wireValue{Type: typeStrings, Value: raw}, nil
	case *Object:
		if v == nil {
			return wireValue{Type: typeNull}, nil
		}
		return wireValue{Type: typeObject, Object: v.id, Class: v.class}, nil
	default:
		return wireValue{}, fmt.Errorf("不支持的参数类型: %T", arg)
	}
}

func decodeValue(v *wireValue) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Type {
	case typeNull:
		return nil, nil
	case typeBoolean:
		var b bool
		if err := json.Unmarshal(v.Value, &b); err != nil {
			return nil, errors.Wrap(err, "解析布尔返回值出错")
		}
		return b, nil
	case typeInt:
		var i int
		if err := json.Unmarshal(v.Value, &i); err != nil {
			return nil, errors.Wrap(err, "解析整数返回值出错")
		}
		return i, nil
	case typeDouble:
		var f float64
		if err := json.Unmarshal(v.Value, &f); err != nil {
			return nil, errors.Wrap(err, "解析浮点返回值出错")
		}
		return f, nil
	case typeString:
		var s string
		if err := json.Unmarshal(v.Value, &s); err != nil {
			return nil, errors.Wrap(err, "解析字符串返回值出错")
		}
		return s, nil
	case typeStrings:
		var s []string
		if err := json.Unmarshal(v.Value, &s); err != nil {
			return nil, errors.Wrap(err, "解析字符串数组返回值出错")
		}
		return s, nil
	case typeObject:
		return &Object{id: v.Object, class: v.Class}, nil
	default:
		return nil, fmt.Errorf("未知的返回值类型: %s", v.Type)
	}
}

func encodeArgs(args []interface{}) ([]wireValue, error) {
	if len(args) == 0 {
		return nil, nil
	}
	encoded := make([]wireValue, len(args))
	for i, arg := range args {
		v, err := encodeValue(arg)
		if err != nil {
			return nil, err
		}
		encoded[i] = v
	}
	return encoded, nil
}

// roundTrip 发送请求并等待应答。网关返回的错误信息原样透传给调用方，
// 本层不做任何重试与恢复。
func (g *gatewayEnv) roundTrip(req *wireRequest) (*wireValue, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrClosed
	}

	g.nextID++
	req.ID = g.nextID

	if err := g.enc.Encode(req); err != nil {
		return nil, errors.Wrap(err, "发送网关请求出错")
	}

	resp := &wireResponse{}
	if err := g.dec.Decode(resp); err != nil {
		return nil, errors.Wrap(err, "读取网关应答出错")
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("网关应答编号不匹配: 期望%d，实际%d", req.ID, resp.ID)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Result, nil
}

func (g *gatewayEnv) callObject(req *wireRequest) (*Object, error) {
	result, err := g.roundTrip(req)
	if err != nil {
		return nil, err
	}
	value, err := decodeValue(result)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("网关应答不是对象引用: %v", value)
	}
	return obj, nil
}

func (g *gatewayEnv) MakeInstance(classname string, args ...interface{}) (*Object, error) {
	encoded, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}
	return g.callObject(&wireRequest{Op: opNew, Class: classname, Args: encoded})
}

func (g *gatewayEnv) Call(obj *Object, method string, args ...interface{}) (interface{}, error) {
	if obj == nil {
		return nil, fmt.Errorf("调用方法%s的目标对象为空", method)
	}
	encoded, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}
	result, err := g.roundTrip(&wireRequest{Op: opCall, Target: obj.id, Method: method, Args: encoded})
	if err != nil {
		return nil, err
	}
	return decodeValue(result)
}

func (g *gatewayEnv) StaticCall(classname, method string, args ...interface{}) (interface{}, error) {
	encoded, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}
	result, err := g.roundTrip(&wireRequest{Op: opStatic, Class: classname, Method: method, Args: encoded})
	if err != nil {
		return nil, err
	}
	return decodeValue(result)
}

func (g *gatewayEnv) MakeObjectArray(length int, classname string) (*Object, error) {
	return g.callObject(&wireRequest{Op: opArray, Class: classname, Length: length})
}

func (g *gatewayEnv) SetObjectArrayElement(arr *Object, index int, value *Object) error {
	if arr == nil {
		return fmt.Errorf("数组对象为空")
	}
	encoded, err := encodeValue(value)
	if err != nil {
		return err
	}
	_, err = g.roundTrip(&wireRequest{Op: opArraySet, Target: arr.id, Index: index, Args: []wireValue{encoded}})
	return err
}

func (g *gatewayEnv) FindClass(classname string) (*Object, error) {
	return g.callObject(&wireRequest{Op: opFindClass, Class: classname})
}

func (g *gatewayEnv) GetObjectClass(obj *Object) (*Object, error) {
	if obj == nil {
		return nil, fmt.Errorf("目标对象为空")
	}
	return g.callObject(&wireRequest{Op: opObjClass, Target: obj.id})
}

func (g *gatewayEnv) IsInstanceOf(obj *Object, classname string) (bool, error) {
	if obj == nil {
		return false, nil
	}
	result, err := g.roundTrip(&wireRequest{Op: opInstanceOf, Target: obj.id, Class: classname})
	if err != nil {
		return false, err
	}
	value, err := decodeValue(result)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("instanceof应答不是布尔值: %v", value)
	}
	return b, nil
}

func (g *gatewayEnv) ClassName(obj *Object) (string, error) {
	if obj == nil {
		return "", fmt.Errorf("目标对象为空")
	}
	result, err := g.roundTrip(&wireRequest{Op: opClassName, Target: obj.id})
	if err != nil {
		return "", err
	}
	value, err := decodeValue(result)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("classname应答不是字符串: %v", value)
	}
	return s, nil
}

// Close 通知网关退出并标记Env为已关闭。重复关闭无副作用。
func (g *gatewayEnv) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	g.nextID++
	// 关闭请求不等待应答，网关收到后自行退出
	return g.enc.Encode(&wireRequest{ID: g.nextID, Op: opShutdown})
}
