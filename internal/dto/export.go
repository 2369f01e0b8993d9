package dto

import "time"

// ExportQuery selects the date window and optional company for an export.
type ExportQuery struct {
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	CompanyID *string   `form:"companyId"`
}
