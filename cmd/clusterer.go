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
	"github.com/fracpete/goweka/pkg/clusterers"
	"github.com/spf13/cobra"
)

// Flags for clusterer
const (
	FlagJars       = "jars"
	FlagTrain      = "train"
	FlagTest       = "test"
	FlagSaveModel  = "save-model"
	FlagLoadModel  = "load-model"
	FlagAttributes = "attributes"
	FlagFolds      = "folds"
	FlagSeed       = "seed"
	FlagClassIndex = "class-index"
	FlagGraph      = "graph"
)

var (
	clustererJars       string
	clustererTrain      string
	clustererTest       string
	clustererSaveModel  string
	clustererLoadModel  string
	clustererAttributes string
	clustererFolds      string
	clustererSeed       string
	clustererClassIndex string
	clustererGraph      string
)

// clustererCmd represents the clusterer command
var clustererCmd = &cobra.Command{
	Use:   "clusterer [flags] -- classname [options...]",
	Short: "评估聚类器，与WEKA自身的命令行评估入口一致",
	Long: "启动JVM，按类名创建聚类器并用WEKA的评估入口生成报告。\n" +
		"classname之后的参数原样作为聚类器自身的选项。\n" +
		"输出评估报告或异常信息。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("未提供聚类器类名")
		}
		if clustererTrain == "" {
			return fmt.Errorf("未提供训练数据文件（-t）")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 最外层边界：打印报告或异常信息，不设置额外的退出码
		if err := runClusterer(args); err != nil {
			fmt.Println(err)
		}
		return nil
	},
}

func runClusterer(args []string) error {
	config := &jvm.Config{}
	if clustererJars != "" {
		config.ClassPath = strings.Split(clustererJars, string(os.PathListSeparator))
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

	// 按固定顺序转发评估参数
	params := make([]string, 0)
	appendParam := func(flag, value string) {
		if value != "" {
			params = append(params, flag, value)
		}
	}
	appendParam("-t", clustererTrain)
	appendParam("-T", clustererTest)
	appendParam("-d", clustererSaveModel)
	appendParam("-l", clustererLoadModel)
	appendParam("-p", clustererAttributes)
	appendParam("-x", clustererFolds)
	appendParam("-s", clustererSeed)
	appendParam("-c", clustererClassIndex)
	appendParam("-g", clustererGraph)

	clusterer, err := clusterers.FromClassName(env, args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		if err := clusterer.SetOptions(args[1:]); err != nil {
			return err
		}
	}

	report, err := clusterers.EvaluateClusterer(env, clusterer, params)
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}

func init() {
	rootCmd.AddCommand(clustererCmd)

	clustererCmd.Flags().StringVarP(&clustererJars, FlagJars, "j", "",
		"classpath路径段，用系统路径分隔符连接")
	clustererCmd.Flags().StringVarP(&clustererTrain, FlagTrain, "t", "",
		"训练数据文件，必须提供")
	clustererCmd.Flags().StringVarP(&clustererTest, FlagTest, "T", "",
		"测试数据文件")
	clustererCmd.Flags().StringVarP(&clustererSaveModel, FlagSaveModel, "d", "",
		"训练后模型的保存文件")
	clustererCmd.Flags().StringVarP(&clustererLoadModel, FlagLoadModel, "l", "",
		"要读取的已训练模型文件")
	clustererCmd.Flags().StringVarP(&clustererAttributes, FlagAttributes, "p", "",
		"输出预测时使用的属性区间")
	clustererCmd.Flags().StringVarP(&clustererFolds, FlagFolds, "x", "",
		"交叉验证折数")
	clustererCmd.Flags().StringVarP(&clustererSeed, FlagSeed, "s", "",
		"随机种子")
	clustererCmd.Flags().StringVarP(&clustererClassIndex, FlagClassIndex, "c", "",
		"类别属性下标")
	clustererCmd.Flags().StringVarP(&clustererGraph, FlagGraph, "g", "",
		"图输出文件")
}
