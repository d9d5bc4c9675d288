/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fracpete/goweka/internal/jvm"
	"github.com/fracpete/goweka/internal/registry"
	"github.com/fracpete/goweka/pkg/experiments"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Flags for experiment
const (
	FlagVariant       = "variant"
	FlagDatasets      = "datasets"
	FlagClassifiers   = "classifiers"
	FlagRegression    = "regression"
	FlagRuns          = "runs"
	FlagExpFolds      = "exp-folds"
	FlagPercentage    = "percentage"
	FlagPreserveOrder = "preserve-order"
	FlagResult        = "result"
	FlagMysqlHost     = "mysql-host"

	VariantCrossValidation = "cv"
	VariantRandomSplit     = "split"
)

var (
	experimentJars          string
	experimentVariant       string
	experimentDatasets      []string
	experimentClassifiers   []string
	experimentRegression    bool
	experimentRuns          int
	experimentFolds         int
	experimentPercentage    float64
	experimentPreserveOrder bool
	experimentResult        string
	experimentMysqlHost     string
)

// experimentCmd represents the experiment command
var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "配置并运行WEKA实验",
	Long: "按交叉验证或随机划分两种方式配置实验，依次执行初始化、运行与后处理三个阶段。\n" +
		"数据集与结果文件按扩展名识别，分类器按命令行形式给出。\n" +
		"指定--mysql-host时把运行记录保存到数据库。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if experimentVariant != VariantCrossValidation && experimentVariant != VariantRandomSplit {
			return fmt.Errorf("未知的实验方式: %s", experimentVariant)
		}
		if len(experimentDatasets) == 0 {
			return fmt.Errorf("未提供数据集")
		}
		if len(experimentClassifiers) == 0 {
			return fmt.Errorf("未提供分类器")
		}
		if experimentResult == "" {
			return fmt.Errorf("未提供结果输出文件")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runExperiment(); err != nil {
			fmt.Println(err)
		}
		return nil
	},
}

func runExperiment() error {
	config := &jvm.Config{}
	if experimentJars != "" {
		config.ClassPath = strings.Split(experimentJars, string(os.PathListSeparator))
	}
	if err := jvm.Start(config); err != nil {
		return err
	}
	defer func() {
		_ = jvm.Stop()
	}()

	env, err := jvm.Env()
	if err != nil {
		return err
	}

	specs := make([]experiments.ClassifierSpec, 0, len(experimentClassifiers))
	for _, cmdline := range experimentClassifiers {
		specs = append(specs, experiments.ClassifierByCommandline(cmdline))
	}

	var exp *experiments.SimpleExperiment
	switch experimentVariant {
	case VariantCrossValidation:
		exp, err = experiments.NewSimpleCrossValidationExperiment(env, experimentDatasets, specs,
			!experimentRegression, experimentRuns, experimentFolds, experimentResult)
	case VariantRandomSplit:
		exp, err = experiments.NewSimpleRandomSplitExperiment(env, experimentDatasets, specs,
			!experimentRegression, experimentRuns, experimentPercentage, experimentPreserveOrder,
			experimentResult)
	}
	if err != nil {
		return err
	}

	var dao registry.Dao
	var run *registry.ExperimentRun
	if experimentMysqlHost != "" {
		dao, err = registry.NewDao(experimentMysqlHost)
		if err != nil {
			return errors.Wrap(err, "连接运行记录数据库出错")
		}
		run = &registry.ExperimentRun{
			Variant:     experimentVariant,
			Datasets:    experimentDatasets,
			Classifiers: experimentClassifiers,
			Runs:        experimentRuns,
			Result:      experimentResult,
		}
		if _, err := dao.SaveRun(run); err != nil {
			return errors.Wrap(err, "保存运行记录出错")
		}
	}

	if err := exp.Setup(); err != nil {
		finishRun(dao, run, registry.StatusFailed)
		return err
	}
	if err := exp.Run(); err != nil {
		finishRun(dao, run, registry.StatusFailed)
		return err
	}
	finishRun(dao, run, registry.StatusCompleted)

	fmt.Printf("实验已完成，结果保存在%s\n", experimentResult)
	return nil
}

func finishRun(dao registry.Dao, run *registry.ExperimentRun, status string) {
	if dao == nil || run == nil {
		return
	}
	if err := dao.FinishRun(run.RunId, status); err != nil {
		fmt.Printf("更新运行记录出错: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(experimentCmd)

	experimentCmd.Flags().StringVarP(&experimentJars, FlagJars, "j", "",
		"classpath路径段，用系统路径分隔符连接")
	experimentCmd.Flags().StringVar(&experimentVariant, FlagVariant, VariantCrossValidation,
		"实验方式，cv为交叉验证，split为随机划分")
	experimentCmd.Flags().StringSliceVar(&experimentDatasets, FlagDatasets, nil,
		"数据集文件列表")
	experimentCmd.Flags().StringSliceVar(&experimentClassifiers, FlagClassifiers, nil,
		"分类器命令行列表，如\"weka.classifiers.trees.J48 -C 0.25\"")
	experimentCmd.Flags().BoolVar(&experimentRegression, FlagRegression, false,
		"按回归问题评估，默认按分类问题")
	experimentCmd.Flags().IntVar(&experimentRuns, FlagRuns, 10,
		"重复运行次数")
	experimentCmd.Flags().IntVar(&experimentFolds, FlagExpFolds, 10,
		"交叉验证折数，仅cv方式使用")
	experimentCmd.Flags().Float64Var(&experimentPercentage, FlagPercentage, 66.6,
		"训练集百分比，仅split方式使用")
	experimentCmd.Flags().BoolVar(&experimentPreserveOrder, FlagPreserveOrder, false,
		"保持数据顺序不随机化，仅split方式使用")
	experimentCmd.Flags().StringVar(&experimentResult, FlagResult, "",
		"结果输出文件，按扩展名选择arff或csv格式")
	experimentCmd.Flags().StringVar(&experimentMysqlHost, FlagMysqlHost, "",
		"运行记录数据库地址，不提供则不记录")
}
