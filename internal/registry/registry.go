// Package registry 在本地数据库中记录每次实验运行的配置与结果状态，
// 供history命令查询。实验结果本身由WEKA写入结果文件，这里只做运行台账。
package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ExperimentRun 是一次实验运行的台账记录。
type ExperimentRun struct {
	RunId       string
	Variant     string
	Datasets    []string
	Classifiers []string
	Runs        int
	Result      string
	Status      string
}

type UpdateDao interface {
	// SaveRun 登记一次新的实验运行，返回生成的运行编号
	SaveRun(run *ExperimentRun) (string, error)
	// FinishRun 更新运行的最终状态
	FinishRun(runId string, status string) error
}

type QueryDao interface {
	QueryRunByRunId(runId string) (*ExperimentRun, error)
	QueryAllRuns() ([]*ExperimentRun, error)
}

type Dao interface {
	DB() *gorm.DB
	UpdateDao
	QueryDao
}

type daoImpl struct {
	db     *gorm.DB
	logger *log.Logger
}

var _ Dao = &daoImpl{}

// NewDao 连接host:port指定的MySQL并准备表格。
func NewDao(host string) (Dao, error) {
	databaseURL := fmt.Sprintf("root@tcp(%s)/goweka?charset=utf8mb4&parseTime=True&loc=Local", host)
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: logger.Silent,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库错误")
	}

	// 创建表格等
	if err := db.AutoMigrate(&ExperimentRunDO{}); err != nil {
		return nil, errors.Wrap(err, "创建表格时出现异常")
	}

	return &daoImpl{
		db:     db,
		logger: log.New(os.Stdout, "registry: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
	}, nil
}

func (d *daoImpl) DB() *gorm.DB {
	return d.db
}

// 列表以JSON数组保存，分类器命令行本身可能含逗号，不能用分隔符拼接
func encodeList(list []string) string {
	if len(list) == 0 {
		return ""
	}
	data, _ := json.Marshal(list)
	return string(data)
}

func decodeList(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	list := make([]string, 0)
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, errors.Wrap(err, "解析列表字段出错")
	}
	return list, nil
}

func toDO(run *ExperimentRun) *ExperimentRunDO {
	return &ExperimentRunDO{
		RunId:       run.RunId,
		Variant:     run.Variant,
		Datasets:    encodeList(run.Datasets),
		Classifiers: encodeList(run.Classifiers),
		Runs:        run.Runs,
		Result:      run.Result,
		Status:      run.Status,
	}
}

func fromDO(do *ExperimentRunDO) (*ExperimentRun, error) {
	datasets, err := decodeList(do.Datasets)
	if err != nil {
		return nil, err
	}
	classifiers, err := decodeList(do.Classifiers)
	if err != nil {
		return nil, err
	}
	return &ExperimentRun{
		RunId:       do.RunId,
		Variant:     do.Variant,
		Datasets:    datasets,
		Classifiers: classifiers,
		Runs:        do.Runs,
		Result:      do.Result,
		Status:      do.Status,
	}, nil
}

func (d *daoImpl) SaveRun(run *ExperimentRun) (string, error) {
	if run.RunId == "" {
		run.RunId = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}

	if err := d.db.Create(toDO(run)).Error; err != nil {
		return "", errors.Wrap(err, "登记实验运行出错")
	}
	d.logger.Printf("登记实验运行%s", run.RunId)
	return run.RunId, nil
}

func (d *daoImpl) FinishRun(runId string, status string) error {
	result := d.db.Model(&ExperimentRunDO{}).Where("run_id = ?", runId).Update("status", status)
	if result.Error != nil {
		return errors.Wrap(result.Error, "更新运行状态出错")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("找不到运行记录: %s", runId)
	}
	return nil
}

func (d *daoImpl) QueryRunByRunId(runId string) (*ExperimentRun, error) {
	do := &ExperimentRunDO{}
	err := d.db.Where("run_id = ?", runId).First(do).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("找不到运行记录: %s", runId)
	}
	if err != nil {
		return nil, errors.Wrap(err, "查询运行记录出错")
	}
	return fromDO(do)
}

func (d *daoImpl) QueryAllRuns() ([]*ExperimentRun, error) {
	dos := make([]*ExperimentRunDO, 0)
	if err := d.db.Order("created_at").Find(&dos).Error; err != nil {
		return nil, errors.Wrap(err, "查询运行记录出错")
	}

	runs := make([]*ExperimentRun, len(dos))
	for i, do := range dos {
		run, err := fromDO(do)
		if err != nil {
			return nil, err
		}
		runs[i] = run
	}
	return runs, nil
}
