package services

import (
	"context"
	"fmt"
	"strconv"

	"classjournal_go/database"
	"classjournal_go/models"
	"classjournal_go/services/aggregation"
	"classjournal_go/storage"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ReportExportService renders a class performance report into an Excel
// workbook: one row per student, average and percentage columns per subject,
// plus the overall aggregate.
type ReportExportService struct {
	performance *PerformanceService
}

func NewReportExportService(performance *PerformanceService) *ReportExportService {
	return &ReportExportService{performance: performance}
}

// ExportClassReport builds the workbook, uploads it to S3 when storage is
// configured and records the export. The file bytes are always returned so
// the handler can stream them even if the upload failed.
func (res *ReportExportService) ExportClassReport(ctx context.Context, classID, requestedBy uint) (*models.ReportExport, []byte, error) {
	var class models.SchoolClass
	if err := database.DB.First(&class, classID).Error; err != nil {
		return nil, nil, fmt.Errorf("class %d not found: %w", classID, err)
	}

	report, err := res.performance.ClassReport(ctx, classID, nil, aggregation.View{Kind: aggregation.ViewAll})
	if err != nil {
		return nil, nil, err
	}

	var students []models.Student
	if err := database.DB.Where("class_id = ?", classID).Order("last_name, first_name").Find(&students).Error; err != nil {
		return nil, nil, err
	}

	var classSubjects []models.ClassSubject
	database.DB.Preload("Subject").Where("class_id = ?", classID).Find(&classSubjects)

	data, err := res.renderWorkbook(class, students, classSubjects, report)
	if err != nil {
		return nil, nil, err
	}

	export := &models.ReportExport{
		ClassID:     classID,
		RequestedBy: requestedBy,
		FileName:    fmt.Sprintf("performance-%s.xlsx", class.Name),
		Status:      "completed",
	}

	if storageService, serr := storage.NewStorageService(); serr == nil {
		key, url, uerr := storageService.UploadBytes("reports", fmt.Sprintf("class-%d", classID), "xlsx", data)
		if uerr != nil {
			logrus.WithError(uerr).Warn("Report upload failed, serving file inline only")
		} else {
			export.S3Key = key
			export.URL = url
		}
	}

	if err := database.DB.Create(export).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record report export")
	}
	return export, data, nil
}

func (res *ReportExportService) renderWorkbook(class models.SchoolClass, students []models.Student, classSubjects []models.ClassSubject, report aggregation.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Performance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student"}
	for _, cs := range classSubjects {
		name := cs.Subject.Name
		if name == "" {
			name = fmt.Sprintf("Subject %d", cs.SubjectID)
		}
		headers = append(headers, name+" avg", name+" %")
	}
	headers = append(headers, "Overall avg", "Overall %")
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, student := range students {
		row := rowIdx + 2
		name := student.LastName + " " + student.FirstName
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, name)

		studentRow, ok := report[student.ID]
		col := 2
		writeResult := func(r aggregation.Result) {
			avgCell, _ := excelize.CoordinatesToCellName(col, row)
			f.SetCellValue(sheet, avgCell, r.Average)
			pctCell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, pctCell, r.Percentage)
			col += 2
		}

		for _, cs := range classSubjects {
			result := aggregation.EmptyResult(class.GradingSystem)
			if ok {
				if r, found := studentRow[strconv.FormatUint(uint64(cs.SubjectID), 10)]; found {
					result = r
				}
			}
			writeResult(result)
		}
		overall := aggregation.EmptyResult(class.GradingSystem)
		if ok {
			if r, found := studentRow[aggregation.OverallKey]; found {
				overall = r
			}
		}
		writeResult(overall)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %v", err)
	}
	return buf.Bytes(), nil
}
