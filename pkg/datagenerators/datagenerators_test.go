package datagenerators

import (
	"testing"

	"github.com/fracpete/goweka/pkg/java"
	"github.com/fracpete/goweka/pkg/java/javatest"
	"github.com/stretchr/testify/assert"
)

func TestFromClassName(t *testing.T) {
	env := javatest.NewEnv()

	g, err := FromClassName(env, "weka.datagenerators.classifiers.classification.Agrawal")
	assert.NoError(t, err)
	assert.Equal(t, "weka.datagenerators.classifiers.classification.Agrawal", g.JObject().Class())
}

func TestFromExistingWrongType(t *testing.T) {
	env := javatest.NewEnv()
	env.InstanceOf = func(obj *java.Object, classname string) bool {
		return false
	}
	jobject, _ := env.MakeInstance("java.lang.String")

	_, err := FromExisting(env, jobject)
	assert.Error(t, err)
}

func TestGenerateFlow(t *testing.T) {
	env := javatest.NewEnv()
	env.Returns["defineDataFormat"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		return java.NewObject(10, "weka.core.Instances"), nil
	})
	env.Returns["getSingleModeFlag"] = true
	env.Returns["getNumExamplesAct"] = 2
	env.Returns["generateStart"] = "% start"
	env.Returns["generateExample"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		return java.NewObject(11, "weka.core.Instance"), nil
	})
	env.Returns["generateFinish"] = "% finish"

	g, err := FromClassName(env, "weka.datagenerators.classifiers.classification.Agrawal")
	assert.NoError(t, err)

	format, err := g.DefineDataFormat()
	assert.NoError(t, err)
	assert.NotNil(t, format)
	assert.NoError(t, g.SetDatasetFormat(format))

	single, err := g.SingleModeFlag()
	assert.NoError(t, err)
	assert.True(t, single)

	count, err := g.NumExamplesAct()
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	start, err := g.GenerateStart()
	assert.NoError(t, err)
	assert.Equal(t, "% start", start)

	for i := 0; i < count; i++ {
		example, err := g.GenerateExample()
		assert.NoError(t, err)
		assert.NotNil(t, example)
	}

	finish, err := g.GenerateFinish()
	assert.NoError(t, err)
	assert.Equal(t, "% finish", finish)
}

func TestMakeData(t *testing.T) {
	env := javatest.NewEnv()

	g, err := FromClassName(env, "weka.datagenerators.classifiers.classification.Agrawal")
	assert.NoError(t, err)

	args := []string{"-o", "out.arff", "-S", "1"}
	assert.NoError(t, MakeData(env, g, args))

	statics := env.MethodCalls("makeData")
	assert.Equal(t, 1, len(statics))
	assert.Equal(t, g.JObject(), statics[0].Args[0])
	assert.Equal(t, args, statics[0].Args[1])
}
