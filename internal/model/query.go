package model

// ReportQuery carries the period or explicit date range of a report request.
type ReportQuery struct {
	Period    string `query:"period" validate:"omitempty,oneof=today week month quarter year"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	GroupBy   string `query:"groupBy" validate:"omitempty,oneof=hour day week month quarter"`
}

// ExportQuery selects the report type and rendering format of an export.
type ExportQuery struct {
	ReportQuery
	Type   string `query:"type" validate:"omitempty,oneof=dashboard products orders customers"`
	Format string `query:"format" validate:"omitempty,oneof=json csv"`
}
