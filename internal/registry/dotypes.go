package registry

import (
	"gorm.io/gorm"
)

// ExperimentRunDO 是实验运行记录的数据库对象。
type ExperimentRunDO struct {
	gorm.Model
	RunId       string `gorm:"uniqueIndex;size:36"`
	Variant     string // cv或split
	Datasets    string // JSON数组形式的数据集文件列表
	Classifiers string // JSON数组形式的分类器命令行列表
	Runs        int
	Result      string // 结果输出文件
	Status      string
}
