package dbmodels

type JobTitle struct {
	BaseModel
	Name string `gorm:"type:varchar(255)"`
}
