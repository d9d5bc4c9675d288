package experiments

import (
	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/java"
)

const resultMatrixType = "weka.experiment.ResultMatrix"

// ResultMatrix 包装实验结果矩阵。只是格式化门面，全部计算在WEKA内部，
// 这里除对象引用外不持有任何状态。
type ResultMatrix struct {
	core.OptionHandler
}

func wrapResultMatrix(env java.Env, jobject *java.Object) (*ResultMatrix, error) {
	handler, err := core.NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(resultMatrixType); err != nil {
		return nil, err
	}
	return &ResultMatrix{OptionHandler: *handler}, nil
}

// MatrixFromClassName 通过类名创建结果矩阵，如weka.experiment.ResultMatrixPlainText。
func MatrixFromClassName(env java.Env, classname string) (*ResultMatrix, error) {
	jobject, err := core.NewInstance(env, classname)
	if err != nil {
		return nil, err
	}
	return wrapResultMatrix(env, jobject)
}

// MatrixFromExisting 采用一个已存在的结果矩阵对象。
func MatrixFromExisting(env java.Env, jobject *java.Object) (*ResultMatrix, error) {
	return wrapResultMatrix(env, jobject)
}

// ToStringMatrix 返回矩阵本体的字符串形式。
func (m *ResultMatrix) ToStringMatrix() (string, error) {
	return java.CallString(m.Env(), m.JObject(), "toStringMatrix")
}

// ToStringKey 返回列名的完整对照表，列名被截断时用于阅读。
func (m *ResultMatrix) ToStringKey() (string, error) {
	return java.CallString(m.Env(), m.JObject(), "toStringKey")
}

// ToStringHeader 返回矩阵的表头。
func (m *ResultMatrix) ToStringHeader() (string, error) {
	return java.CallString(m.Env(), m.JObject(), "toStringHeader")
}

// ToStringSummary 返回结果汇总。
func (m *ResultMatrix) ToStringSummary() (string, error) {
	return java.CallString(m.Env(), m.JObject(), "toStringSummary")
}

// ToStringRanking 返回排名。
func (m *ResultMatrix) ToStringRanking() (string, error) {
	return java.CallString(m.Env(), m.JObject(), "toStringRanking")
}
