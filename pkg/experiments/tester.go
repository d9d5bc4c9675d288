package experiments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fracpete/goweka/pkg/core"
	"github.com/fracpete/goweka/pkg/dataset"
	"github.com/fracpete/goweka/pkg/java"
)

const testerType = "weka.experiment.Tester"

// 列映射的解析状态。列名或数据集被重新赋值后回到stale，
// 下一次统计查询前重新解析。
type columnState int

const (
	columnsStale columnState = iota
	columnsResolved
)

// Tester 包装显著性检验工具，如weka.experiment.PairedCorrectedTTester。
// 持有三部分列映射配置：数据集标识列、运行编号列（可选折编号列）与
// 结果标识列。每次配置变化后，查询前都会把列名重新解析为数据集中的
// 属性下标，统计计算本身委托给WEKA。
type Tester struct {
	core.OptionHandler

	datasetColumns []string
	runColumn      string
	foldColumn     string
	resultColumns  []string
	state          columnState
}

func wrapTester(env java.Env, jobject *java.Object) (*Tester, error) {
	handler, err := core.NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if err := handler.EnforceType(testerType); err != nil {
		return nil, err
	}
	return &Tester{
		OptionHandler:  *handler,
		datasetColumns: []string{"Key_Dataset"},
		runColumn:      "Key_Run",
		foldColumn:     "Key_Fold",
		resultColumns:  []string{"Key_Scheme", "Key_Scheme_options", "Key_Scheme_version_ID"},
		state:          columnsStale,
	}, nil
}

// TesterFromClassName 通过类名创建检验工具。
func TesterFromClassName(env java.Env, classname string) (*Tester, error) {
	jobject, err := core.NewInstance(env, classname)
	if err != nil {
		return nil, err
	}
	return wrapTester(env, jobject)
}

// TesterFromExisting 采用一个已存在的检验工具对象。非Tester类型时报错。
func TesterFromExisting(env java.Env, jobject *java.Object) (*Tester, error) {
	return wrapTester(env, jobject)
}

// SetResultMatrix 设置使用的结果矩阵。
func (t *Tester) SetResultMatrix(matrix *ResultMatrix) error {
	_, err := t.Env().Call(t.JObject(), "setResultMatrix", matrix.JObject())
	return err
}

// ResultMatrix 返回当前使用的结果矩阵。
func (t *Tester) ResultMatrix() (*ResultMatrix, error) {
	jobject, err := java.CallObject(t.Env(), t.JObject(), "getResultMatrix")
	if err != nil {
		return nil, err
	}
	if jobject == nil {
		return nil, nil
	}
	return MatrixFromExisting(t.Env(), jobject)
}

// SetInstances 设置用于分析的结果数据集，列映射回到待解析状态。
func (t *Tester) SetInstances(data *dataset.Instances) error {
	if _, err := t.Env().Call(t.JObject(), "setInstances", data.JObject()); err != nil {
		return err
	}
	t.state = columnsStale
	return nil
}

// Instances 返回当前分析的数据集，未设置时返回nil。
func (t *Tester) Instances() (*dataset.Instances, error) {
	jobject, err := java.CallObject(t.Env(), t.JObject(), "getInstances")
	if err != nil {
		return nil, err
	}
	if jobject == nil {
		return nil, nil
	}
	return dataset.FromExisting(t.Env(), jobject)
}

// SetDatasetColumns 设置唯一标识数据集的列名。
func (t *Tester) SetDatasetColumns(names []string) {
	t.datasetColumns = make([]string, len(names))
	copy(t.datasetColumns, names)
	t.state = columnsStale
}

// SetRunColumn 设置保存运行编号的列名。
func (t *Tester) SetRunColumn(name string) {
	t.runColumn = name
	t.state = columnsStale
}

// SetFoldColumn 设置保存折编号的列名。为空表示不使用折编号列。
func (t *Tester) SetFoldColumn(name string) {
	t.foldColumn = name
	t.state = columnsStale
}

// SetResultColumns 设置唯一标识结果的列名，如分类器加选项加版本号。
func (t *Tester) SetResultColumns(names []string) {
	t.resultColumns = make([]string, len(names))
	copy(t.resultColumns, names)
	t.state = columnsStale
}

// columnRange 把一组列名解析为1起始下标的区间字符串。缺失的列名报错并指出列名。
func (t *Tester) columnRange(data *dataset.Instances, names []string, kind string) (string, error) {
	indices := make([]string, 0, len(names))
	for _, name := range names {
		attribute, err := data.AttributeByName(name)
		if err != nil {
			return "", err
		}
		if attribute == nil {
			return "", fmt.Errorf("找不到%s列: %s", kind, name)
		}
		index, err := attribute.Index()
		if err != nil {
			return "", err
		}
		indices = append(indices, strconv.Itoa(index+1))
	}
	return strings.Join(indices, ","), nil
}

// resolveColumns 把列名解析为属性下标并写入外部对象。已解析且配置未变时
// 直接返回。缺失列名的查找错误发生在任何统计计算之前。
func (t *Tester) resolveColumns() error {
	if t.state == columnsResolved {
		return nil
	}

	data, err := t.Instances()
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("尚未设置用于分析的数据集")
	}

	// 数据集标识列
	if len(t.datasetColumns) == 0 {
		return fmt.Errorf("未设置数据集标识列")
	}
	columns, err := t.columnRange(data, t.datasetColumns, "数据集标识")
	if err != nil {
		return err
	}
	datasetRange, err := core.NewRange(t.Env(), columns)
	if err != nil {
		return err
	}
	if _, err := t.Env().Call(t.JObject(), "setDatasetKeyColumns", datasetRange.JObject()); err != nil {
		return err
	}

	// 运行编号列
	if t.runColumn == "" {
		return fmt.Errorf("未设置运行编号列")
	}
	attribute, err := data.AttributeByName(t.runColumn)
	if err != nil {
		return err
	}
	if attribute == nil {
		return fmt.Errorf("找不到运行编号列: %s", t.runColumn)
	}
	index, err := attribute.Index()
	if err != nil {
		return err
	}
	if _, err := t.Env().Call(t.JObject(), "setRunColumn", index); err != nil {
		return err
	}

	// 折编号列：可选，缺失时下标为-1
	if t.foldColumn != "" {
		foldIndex := -1
		attribute, err = data.AttributeByName(t.foldColumn)
		if err != nil {
			return err
		}
		if attribute != nil {
			foldIndex, err = attribute.Index()
			if err != nil {
				return err
			}
		}
		if _, err := t.Env().Call(t.JObject(), "setFoldColumn", foldIndex); err != nil {
			return err
		}
	}

	// 结果标识列
	if len(t.resultColumns) == 0 {
		return fmt.Errorf("未设置结果标识列")
	}
	columns, err = t.columnRange(data, t.resultColumns, "结果标识")
	if err != nil {
		return err
	}
	resultRange, err := core.NewRange(t.Env(), columns)
	if err != nil {
		return err
	}
	if _, err := t.Env().Call(t.JObject(), "setResultsetKeyColumns", resultRange.JObject()); err != nil {
		return err
	}

	t.state = columnsResolved
	return nil
}

// Header 返回描述当前结果集的表头字符串。
func (t *Tester) Header(comparisonColumn int) (string, error) {
	if err := t.resolveColumns(); err != nil {
		return "", err
	}
	return java.CallString(t.Env(), t.JObject(), "header", comparisonColumn)
}

// MultiResultsetFull 返回以基准结果集对比其余结果集的完整对照表。
// baseResultset与comparisonColumn均为0起始下标。
func (t *Tester) MultiResultsetFull(baseResultset, comparisonColumn int) (string, error) {
	if err := t.resolveColumns(); err != nil {
		return "", err
	}
	return java.CallString(t.Env(), t.JObject(), "multiResultsetFull", baseResultset, comparisonColumn)
}

// MultiResultsetRanking 返回结果集排名。
func (t *Tester) MultiResultsetRanking(comparisonColumn int) (string, error) {
	if err := t.resolveColumns(); err != nil {
		return "", err
	}
	return java.CallString(t.Env(), t.JObject(), "multiResultsetRanking", comparisonColumn)
}

// MultiResultsetSummary 返回结果集之间两两胜负计数的汇总。
func (t *Tester) MultiResultsetSummary(comparisonColumn int) (string, error) {
	if err := t.resolveColumns(); err != nil {
		return "", err
	}
	return java.CallString(t.Env(), t.JObject(), "multiResultsetSummary", comparisonColumn)
}
