package mapping

import (
	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		ProjectID:     d.ProjectID,
		Status:        models.InvoiceStatus(d.Status),
		Subtotal:      d.Subtotal,
		Discount:      d.Discount,
		Total:         d.Total,
		Notes:         d.Notes,
		InvoiceNumber: d.InvoiceNumber,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		ProjectID:     m.ProjectID,
		Status:        domain.InvoiceStatus(m.Status),
		Subtotal:      m.Subtotal,
		Discount:      m.Discount,
		Total:         m.Total,
		Notes:         m.Notes,
		InvoiceNumber: m.InvoiceNumber,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelInvoiceLine converts a domain InvoiceLine to a model InvoiceLine
func ToModelInvoiceLine(d domain.InvoiceLine) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:       d.LineID,
		InvoiceID:    d.InvoiceID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		RoleName:     d.RoleName,
		Hours:        d.Hours,
		RateSnapshot: d.RateSnapshot,
		Amount:       d.Amount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceLine converts a model InvoiceLine to a domain InvoiceLine
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:       m.LineID,
		InvoiceID:    m.InvoiceID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		RoleName:     m.RoleName,
		Hours:        m.Hours,
		RateSnapshot: m.RateSnapshot,
		Amount:       m.Amount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceLineSlice converts model InvoiceLines to domain InvoiceLines
func ToDomainInvoiceLineSlice(ms []models.InvoiceLine) []domain.InvoiceLine {
	ds := make([]domain.InvoiceLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceLine(m)
	}
	return ds
}

// ToModelInvoiceManualLine converts a domain manual line to its model
func ToModelInvoiceManualLine(d domain.InvoiceManualLine) models.InvoiceManualLine {
	return models.InvoiceManualLine{
		ManualLineID: d.ManualLineID,
		InvoiceID:    d.InvoiceID,
		PersonName:   d.PersonName,
		Hours:        d.Hours,
		RateUSD:      d.RateUSD,
		Description:  d.Description,
		LineTotal:    d.LineTotal,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceManualLine converts a model manual line to its domain type
func ToDomainInvoiceManualLine(m models.InvoiceManualLine) domain.InvoiceManualLine {
	return domain.InvoiceManualLine{
		ManualLineID: m.ManualLineID,
		InvoiceID:    m.InvoiceID,
		PersonName:   m.PersonName,
		Hours:        m.Hours,
		RateUSD:      m.RateUSD,
		Description:  m.Description,
		LineTotal:    m.LineTotal,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceManualLineSlice converts model manual lines to domain manual lines
func ToDomainInvoiceManualLineSlice(ms []models.InvoiceManualLine) []domain.InvoiceManualLine {
	ds := make([]domain.InvoiceManualLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceManualLine(m)
	}
	return ds
}

// ToModelInvoiceFee converts a domain fee to its model
func ToModelInvoiceFee(d domain.InvoiceFee) models.InvoiceFee {
	return models.InvoiceFee{
		FeeID:        d.FeeID,
		InvoiceID:    d.InvoiceID,
		Label:        d.Label,
		Quantity:     d.Quantity,
		UnitPriceUSD: d.UnitPriceUSD,
		Description:  d.Description,
		FeeTotal:     d.FeeTotal,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceFee converts a model fee to its domain type
func ToDomainInvoiceFee(m models.InvoiceFee) domain.InvoiceFee {
	return domain.InvoiceFee{
		FeeID:        m.FeeID,
		InvoiceID:    m.InvoiceID,
		Label:        m.Label,
		Quantity:     m.Quantity,
		UnitPriceUSD: m.UnitPriceUSD,
		Description:  m.Description,
		FeeTotal:     m.FeeTotal,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceFeeSlice converts model fees to domain fees
func ToDomainInvoiceFeeSlice(ms []models.InvoiceFee) []domain.InvoiceFee {
	ds := make([]domain.InvoiceFee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceFee(m)
	}
	return ds
}

// ToDomainFeeAttachment converts a model attachment to its domain type
func ToDomainFeeAttachment(m models.InvoiceFeeAttachment) domain.InvoiceFeeAttachment {
	return domain.InvoiceFeeAttachment{
		AttachmentID: m.AttachmentID,
		FeeID:        m.FeeID,
		FileName:     m.FileName,
		FileURL:      m.FileURL,
		FileSize:     m.FileSize,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToDomainFeeAttachmentSlice converts model attachments to domain attachments
func ToDomainFeeAttachmentSlice(ms []models.InvoiceFeeAttachment) []domain.InvoiceFeeAttachment {
	ds := make([]domain.InvoiceFeeAttachment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeeAttachment(m)
	}
	return ds
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID: m.EmployeeID,
		Name:       m.Name,
		Email:      m.Email,
	}
}

// ToDomainEmployeeSlice converts model Employees to domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}
