package experiments

import (
	"strings"
	"testing"

	"github.com/fracpete/goweka/pkg/java"
	"github.com/fracpete/goweka/pkg/java/javatest"
	"github.com/stretchr/testify/assert"
)

// testerEnv 构造带结果数据集的脚本环境。columns为属性名到0起始下标的映射，
// 属性对象用"attr:名字"形式的类名区分，便于按对象脚本下标返回值。
func testerEnv(columns map[string]int) *javatest.Env {
	env := javatest.NewEnv()
	env.Returns["getInstances"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		return java.NewObject(1000, "weka.core.Instances"), nil
	})
	env.Returns["weka.core.Instances#attribute"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		name := args[0].(string)
		if _, ok := columns[name]; !ok {
			return nil, nil
		}
		return java.NewObject(2000, "attr:"+name), nil
	})
	for name, index := range columns {
		env.Returns["attr:"+name+"#index"] = index
	}
	return env
}

func defaultColumns() map[string]int {
	return map[string]int{
		"Key_Dataset":           0,
		"Key_Run":               1,
		"Key_Fold":              2,
		"Key_Scheme":            3,
		"Key_Scheme_options":    4,
		"Key_Scheme_version_ID": 5,
	}
}

// setRanges的全部调用参数，按顺序
func rangeCalls(env *javatest.Env) []string {
	result := make([]string, 0)
	for _, record := range env.MethodCalls("setRanges") {
		result = append(result, record.Args[0].(string))
	}
	return result
}

func newTester(t *testing.T, env *javatest.Env) *Tester {
	tester, err := TesterFromClassName(env, "weka.experiment.PairedCorrectedTTester")
	assert.NoError(t, err)
	return tester
}

func TestHeaderResolvesColumns(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["header"] = "Analysing: Percent_correct"
	tester := newTester(t, env)

	header, err := tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, "Analysing: Percent_correct", header)

	// 数据集标识列与结果标识列解析为1起始的区间
	assert.Equal(t, []string{"1", "4,5,6"}, rangeCalls(env))
	assert.Equal(t, 1, len(env.MethodCalls("setDatasetKeyColumns")))
	assert.Equal(t, 1, len(env.MethodCalls("setResultsetKeyColumns")))

	// 运行编号列使用0起始下标
	assert.Equal(t, 1, env.MethodCalls("setRunColumn")[0].Args[0])
	assert.Equal(t, 2, env.MethodCalls("setFoldColumn")[0].Args[0])

	assert.Equal(t, 6, env.MethodCalls("header")[0].Args[0])
}

func TestColumnResolutionCached(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["header"] = "x"
	tester := newTester(t, env)

	_, err := tester.Header(6)
	assert.NoError(t, err)
	_, err = tester.Header(6)
	assert.NoError(t, err)

	// 第二次查询不再重新解析
	assert.Equal(t, 1, len(env.MethodCalls("setRunColumn")))
	assert.Equal(t, 2, len(env.MethodCalls("header")))
}

func TestColumnReassignmentForcesReResolution(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["header"] = "x"
	tester := newTester(t, env)

	_, err := tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(env.MethodCalls("setRunColumn")))

	tester.SetRunColumn("Key_Run")
	_, err = tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(env.MethodCalls("setRunColumn")))

	tester.SetDatasetColumns([]string{"Key_Dataset"})
	_, err = tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(env.MethodCalls("setRunColumn")))

	tester.SetFoldColumn("Key_Fold")
	_, err = tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(env.MethodCalls("setRunColumn")))

	tester.SetResultColumns([]string{"Key_Scheme"})
	_, err = tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(env.MethodCalls("setRunColumn")))
}

func TestSetInstancesForcesReResolution(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["header"] = "x"
	tester := newTester(t, env)

	_, err := tester.Header(6)
	assert.NoError(t, err)

	data, err := tester.Instances()
	assert.NoError(t, err)
	assert.NotNil(t, data)

	assert.NoError(t, tester.SetInstances(data))
	_, err = tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(env.MethodCalls("setRunColumn")))
}

func TestMissingColumnFailsBeforeStatistics(t *testing.T) {
	columns := defaultColumns()
	delete(columns, "Key_Scheme_options")
	env := testerEnv(columns)
	env.Returns["multiResultsetFull"] = "never"
	tester := newTester(t, env)

	_, err := tester.MultiResultsetFull(0, 6)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Key_Scheme_options"))
	// 统计计算没有被调用
	assert.Equal(t, 0, len(env.MethodCalls("multiResultsetFull")))
}

func TestMissingFoldColumnTolerated(t *testing.T) {
	columns := defaultColumns()
	delete(columns, "Key_Fold")
	env := testerEnv(columns)
	env.Returns["header"] = "x"
	tester := newTester(t, env)

	_, err := tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, -1, env.MethodCalls("setFoldColumn")[0].Args[0])
}

func TestNoFoldColumnConfigured(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["header"] = "x"
	tester := newTester(t, env)
	tester.SetFoldColumn("")

	_, err := tester.Header(6)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(env.MethodCalls("setFoldColumn")))
}

func TestNoInstancesSet(t *testing.T) {
	env := javatest.NewEnv()
	tester := newTester(t, env)

	_, err := tester.Header(6)
	assert.Error(t, err)
	assert.Equal(t, 0, len(env.MethodCalls("header")))
}

func TestStatisticalQueries(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["multiResultsetFull"] = "full"
	env.Returns["multiResultsetRanking"] = "ranking"
	env.Returns["multiResultsetSummary"] = "summary"
	tester := newTester(t, env)

	full, err := tester.MultiResultsetFull(0, 6)
	assert.NoError(t, err)
	assert.Equal(t, "full", full)
	assert.Equal(t, 0, env.MethodCalls("multiResultsetFull")[0].Args[0])
	assert.Equal(t, 6, env.MethodCalls("multiResultsetFull")[0].Args[1])

	ranking, err := tester.MultiResultsetRanking(6)
	assert.NoError(t, err)
	assert.Equal(t, "ranking", ranking)

	summary, err := tester.MultiResultsetSummary(6)
	assert.NoError(t, err)
	assert.Equal(t, "summary", summary)
}

func TestSetResultMatrix(t *testing.T) {
	env := testerEnv(defaultColumns())
	env.Returns["getResultMatrix"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		return java.NewObject(3000, "weka.experiment.ResultMatrixPlainText"), nil
	})
	tester := newTester(t, env)

	matrix, err := MatrixFromClassName(env, "weka.experiment.ResultMatrixPlainText")
	assert.NoError(t, err)
	assert.NoError(t, tester.SetResultMatrix(matrix))
	assert.Equal(t, 1, len(env.MethodCalls("setResultMatrix")))

	current, err := tester.ResultMatrix()
	assert.NoError(t, err)
	assert.Equal(t, "weka.experiment.ResultMatrixPlainText", current.JObject().Class())
}
