// Package jvm 管理进程级的JVM生命周期。整个进程最多同时存在一个JVM，
// Start与Stop构成所有外部调用的边界：Stop之后，所有包装对象全部失效。
package jvm

import (
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/fracpete/goweka/pkg/java"
	"github.com/pkg/errors"
)

// DefaultMainClass 是网关进程的入口类。需要位于classpath中。
const DefaultMainClass = "goweka.gateway.GatewayServer"

const DefaultJavaCommand = "java"

// ErrNotRunning 表示JVM尚未启动。
var ErrNotRunning = errors.New("JVM尚未启动")

type Config struct {
	ClassPath   []string // 传给java -cp的各个路径段
	MaxHeapSize string   // 最大堆内存，如"512m"。为空则使用JVM默认值
	Packages    bool     // 是否加载WEKA包管理器安装的扩展包
	JavaCommand string   // java可执行文件，默认为java
	MainClass   string   // 网关入口类，默认为DefaultMainClass
}

// Complete 填充默认值。
func (c *Config) Complete() error {
	if c.JavaCommand == "" {
		c.JavaCommand = DefaultJavaCommand
	}
	if c.MainClass == "" {
		c.MainClass = DefaultMainClass
	}
	return nil
}

// commandArgs 组装java命令行参数。classpath各段用系统路径分隔符连接。
func (c *Config) commandArgs() []string {
	args := make([]string, 0, 6)
	if c.MaxHeapSize != "" {
		args = append(args, "-Xmx"+c.MaxHeapSize)
	}
	if len(c.ClassPath) > 0 {
		args = append(args, "-cp", strings.Join(c.ClassPath, string(os.PathListSeparator)))
	}
	args = append(args, c.MainClass)
	if c.Packages {
		args = append(args, "-packages")
	}
	return args
}

var (
	logger  = log.New(os.Stdout, "jvm: ", log.LstdFlags|log.Lmsgprefix)
	process *exec.Cmd
	env     java.Env
)

// Start 启动JVM网关进程并建立桥接连接。重复启动将被忽略。
func Start(config *Config) error {
	if env != nil {
		logger.Println("JVM已经启动，忽略此次启动请求")
		return nil
	}

	if config == nil {
		config = &Config{}
	}
	if err := config.Complete(); err != nil {
		return err
	}

	cmd := exec.Command(config.JavaCommand, config.commandArgs()...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "创建JVM输入管道出错")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "创建JVM输出管道出错")
	}

	logger.Printf("启动JVM: %s %s", config.JavaCommand, strings.Join(config.commandArgs(), " "))
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "启动JVM进程失败")
	}

	process = cmd
	env = java.NewGatewayEnv(stdout, stdin)
	return nil
}

// Running 返回JVM是否已启动。
func Running() bool {
	return env != nil
}

// Env 返回当前JVM的桥接Env。未启动时返回ErrNotRunning。
func Env() (java.Env, error) {
	if env == nil {
		return nil, ErrNotRunning
	}
	return env, nil
}

// Stop 关闭桥接连接并等待JVM进程退出。未启动时无副作用。
func Stop() error {
	if env == nil {
		return nil
	}

	logger.Println("关闭JVM")
	if err := env.Close(); err != nil {
		logger.Printf("关闭桥接连接出错: %v", err)
	}
	err := process.Wait()
	env = nil
	process = nil
	if err != nil {
		return errors.Wrap(err, "JVM进程退出异常")
	}
	return nil
}
