package main

import (
	"inventaris/models"

	"gorm.io/gorm"
)

// Record Store helpers for salary records and their documents. Partial-update
// merging happens in the handlers; these always read or write full records.
// Missing keys surface as gorm.ErrRecordNotFound.

func getSalary(id string) (*models.SalaryRecord, error) {
	var rec models.SalaryRecord
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func listSalaries() ([]models.SalaryRecord, error) {
	var items []models.SalaryRecord
	err := db.Order("created_at desc").Find(&items).Error
	return items, err
}

func upsertSalary(rec *models.SalaryRecord) error {
	return db.Save(rec).Error
}

func deleteSalary(id string) error {
	res := db.Delete(&models.SalaryRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func documentsForSalary(salaryID string) ([]models.SalaryDocument, error) {
	items := []models.SalaryDocument{}
	err := db.Where("salary_id = ?", salaryID).Order("created_at desc").Find(&items).Error
	return items, err
}

func addDocument(doc *models.SalaryDocument) error {
	return db.Create(doc).Error
}

func getDocument(salaryID, docID string) (*models.SalaryDocument, error) {
	var doc models.SalaryDocument
	if err := db.First(&doc, "salary_id = ? AND id = ?", salaryID, docID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func deleteDocument(salaryID, docID string) error {
	res := db.Delete(&models.SalaryDocument{}, "salary_id = ? AND id = ?", salaryID, docID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
