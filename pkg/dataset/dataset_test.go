package dataset

import (
	"testing"

	"github.com/fracpete/goweka/pkg/java"
	"github.com/fracpete/goweka/pkg/java/javatest"
	"github.com/stretchr/testify/assert"
)

func TestFromExisting(t *testing.T) {
	env := javatest.NewEnv()
	jobject, _ := env.MakeInstance("weka.core.Instances")

	data, err := FromExisting(env, jobject)
	assert.NoError(t, err)
	assert.Equal(t, "weka.core.Instances", data.JObject().Class())
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

func TestAttributeByName(t *testing.T) {
	env := javatest.NewEnv()
	env.Returns["weka.core.Instances#attribute"] = javatest.ReturnFunc(func(args []interface{}) (interface{}, error) {
		if args[0] == "Key_Run" {
			return java.NewObject(100, "weka.core.Attribute"), nil
		}
		return nil, nil
	})
	env.Returns["weka.core.Attribute#index"] = 2

	jobject, _ := env.MakeInstance("weka.core.Instances")
	data, err := FromExisting(env, jobject)
	assert.NoError(t, err)

	att, err := data.AttributeByName("Key_Run")
	assert.NoError(t, err)
	assert.NotNil(t, att)
	index, err := att.Index()
	assert.NoError(t, err)
	assert.Equal(t, 2, index)

	att, err = data.AttributeByName("missing")
	assert.NoError(t, err)
	assert.Nil(t, att)
}
