package model

import (
	"time"
)

type Project struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Type      string    `json:"type" gorm:"size:20;not null"` // code, manual
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items      []ProjectItem   `json:"items,omitempty" gorm:"foreignKey:ProjectID"`
	Sections   []ManualSection `json:"sections,omitempty" gorm:"foreignKey:ProjectID"`
	ExportJobs []ExportJob     `json:"export_jobs,omitempty" gorm:"foreignKey:ProjectID"`
}

// UploadedFile 上传文件记录，文件内容保存在 StoragePath
// 上传本身由外部服务完成，这里只读
type UploadedFile struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OriginalFilename string    `json:"original_filename" gorm:"size:255;not null"`
	StoragePath      string    `json:"storage_path" gorm:"size:500;not null"`
	FileSize         int64     `json:"file_size" gorm:"not null"`
	UploaderID       uint      `json:"uploader_id" gorm:"index;not null"`
	CreatedAt        time.Time `json:"created_at"`
}

type ProjectItem struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProjectID        uint      `json:"project_id" gorm:"index;not null"`
	FileID           uint      `json:"file_id" gorm:"index;not null"`
	DisplayName      string    `json:"display_name" gorm:"size:255"`      // 显示名覆盖
	LanguageOverride string    `json:"language_override" gorm:"size:50"`  // 手动指定高亮语言
	IncludeInExport  bool      `json:"include_in_export" gorm:"default:true"`
	OrderIndex       int       `json:"order_index" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`

	File *UploadedFile `json:"file,omitempty" gorm:"foreignKey:FileID"`
}

type ManualSection struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProjectID    uint      `json:"project_id" gorm:"index;not null"`
	Title        string    `json:"title" gorm:"size:200;not null"`
	BodyMarkdown string    `json:"body_markdown" gorm:"type:text;not null"`
	ImageFileID  uint      `json:"image_file_id"`
	OrderIndex   int       `json:"order_index" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LanguageMapping 后缀-语言映射表，首次使用时写入默认表
type LanguageMapping struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Suffix    string    `json:"suffix" gorm:"size:20;not null;uniqueIndex"` // 例如 .py, .java
	Language  string    `json:"language" gorm:"size:50;not null"`
	Enabled   bool      `json:"enabled" gorm:"default:true"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportJob 导出任务记录
// 状态只由导出服务修改，进入 completed/failed 后不再变化
type ExportJob struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	JobID        string     `json:"job_id" gorm:"size:64;uniqueIndex"` // UUID
	ProjectID    uint       `json:"project_id" gorm:"index;not null"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	ExportType   string     `json:"export_type" gorm:"size:20;not null"`   // pdf, html
	Status       string     `json:"status" gorm:"size:20;default:pending"` // pending, processing, completed, failed
	Progress     int        `json:"progress" gorm:"default:0"`             // 0-100
	FileName     string     `json:"file_name" gorm:"size:255"`
	FileSize     int64      `json:"file_size"`
	FilePath     string     `json:"file_path" gorm:"size:500"`
	ErrorMsg     string     `json:"error_msg" gorm:"size:2000"`
	OptionsJSON  string     `json:"options_json" gorm:"type:text"` // 创建时的选项快照
	TotalFiles   int        `json:"total_files"`
	TotalSections int       `json:"total_sections"`
	TotalLines   int        `json:"total_lines"`
	ProcessingMs int64      `json:"processing_ms"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// 默认后缀映射，表为空时初始化
var DefaultLanguageMappings = []struct {
	Suffix   string
	Language string
}{
	{".py", "python"},
	{".go", "go"},
	{".java", "java"},
	{".js", "javascript"},
	{".ts", "typescript"},
	{".c", "c"},
	{".cpp", "cpp"},
	{".h", "c"},
	{".hpp", "cpp"},
	{".css", "css"},
	{".html", "html"},
	{".vue", "vue"},
	{".xml", "xml"},
	{".json", "json"},
	{".yml", "yaml"},
	{".yaml", "yaml"},
	{".sql", "sql"},
	{".sh", "bash"},
	{".bat", "batch"},
	{".md", "markdown"},
	{".txt", "text"},
}
