package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/errs"
	"bluerhyno/internal/infrastructure/persistence/sqlite/model"
	"bluerhyno/internal/ports"
)

type QuotingRepository struct {
	db *gorm.DB
}

func NewQuotingRepository(db *gorm.DB) *QuotingRepository {
	return &QuotingRepository{db: db}
}

func (r *QuotingRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *QuotingRepository) GetCustomer(ctx context.Context, customerID uint64) (ports.Customer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Customer{}, err
	}

	var row model.Customer
	if err := db.Where("CustomerID = ?", customerID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Customer{}, ports.ErrCustomerNotFound
		}
		return ports.Customer{}, errs.Wrap(err, "query customer")
	}
	return mapCustomer(row), nil
}

func (r *QuotingRepository) GetCustomerByEmail(ctx context.Context, email string) (ports.Customer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Customer{}, err
	}

	var row model.Customer
	if err := db.Where("Email = ?", strings.TrimSpace(email)).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Customer{}, ports.ErrCustomerNotFound
		}
		return ports.Customer{}, errs.Wrap(err, "query customer by email")
	}
	return mapCustomer(row), nil
}

func (r *QuotingRepository) ListCustomers(ctx context.Context) ([]ports.Customer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Customer
	if err := db.Order("CustomerID asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query customers")
	}

	items := make([]ports.Customer, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapCustomer(row))
	}
	return items, nil
}

func (r *QuotingRepository) CreateCustomer(ctx context.Context, customer ports.Customer) (ports.Customer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Customer{}, err
	}

	row := model.Customer{
		Email:       customer.Email,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		PhoneNumber: customer.PhoneNumber,
		Address:     customer.Address,
		City:        customer.City,
		State:       customer.State,
		ZipCode:     customer.ZipCode,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Customer{}, errs.Wrap(err, "insert customer")
	}
	return mapCustomer(row), nil
}

func (r *QuotingRepository) UpdateCustomer(ctx context.Context, customer ports.Customer) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.Customer{}).
		Where("CustomerID = ?", customer.CustomerID).
		Updates(map[string]any{
			"FirstName":   customer.FirstName,
			"LastName":    customer.LastName,
			"PhoneNumber": customer.PhoneNumber,
			"Address":     customer.Address,
			"City":        customer.City,
			"State":       customer.State,
			"ZipCode":     customer.ZipCode,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update customer")
	}
	if res.RowsAffected == 0 {
		return ports.ErrCustomerNotFound
	}
	return nil
}

func (r *QuotingRepository) GetQuote(ctx context.Context, quoteID uint64) (ports.Quote, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Quote{}, err
	}

	var row model.Quote
	if err := db.Where("QuoteID = ?", quoteID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Quote{}, ports.ErrQuoteNotFound
		}
		return ports.Quote{}, errs.Wrap(err, "query quote")
	}
	return mapQuote(row), nil
}

func (r *QuotingRepository) ListQuotes(ctx context.Context) ([]ports.Quote, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Quote
	if err := db.Order("QuoteID asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query quotes")
	}

	items := make([]ports.Quote, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapQuote(row))
	}
	return items, nil
}

func (r *QuotingRepository) CreateQuote(ctx context.Context, quote ports.Quote) (ports.Quote, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Quote{}, err
	}

	row := model.Quote{
		CustomerID:   quote.CustomerID,
		QuoteDate:    quote.QuoteDate,
		Status:       quote.Status,
		MaterialType: quote.MaterialType,
		FenceLength:  quote.FenceLength,
		HOAApproval:  quote.HOAApproval,
		CityApproval: quote.CityApproval,
		PhotoPaths:   strings.Join(quote.PhotoPaths, ","),
		Address:      quote.Address,
		Address2:     optionalString(quote.Address2),
		EmailSent:    quote.EmailSent,
		TotalAmount:  quote.TotalAmount,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Quote{}, errs.Wrap(err, "insert quote")
	}
	return mapQuote(row), nil
}

func (r *QuotingRepository) SetQuoteReferenceNumber(ctx context.Context, quoteID uint64, referenceNumber string) error {
	return r.updateQuote(ctx, quoteID, map[string]any{"ReferenceNumber": referenceNumber}, "set reference number")
}

func (r *QuotingRepository) SetQuoteStatus(ctx context.Context, quoteID uint64, status string) error {
	return r.updateQuote(ctx, quoteID, map[string]any{"Status": status}, "set quote status")
}

func (r *QuotingRepository) SetQuoteRejection(ctx context.Context, quoteID uint64, status string, reason string) error {
	return r.updateQuote(ctx, quoteID, map[string]any{
		"Status":          status,
		"RejectionReason": reason,
	}, "set quote rejection")
}

func (r *QuotingRepository) SetQuoteTotalAmount(ctx context.Context, quoteID uint64, totalAmount float64) error {
	return r.updateQuote(ctx, quoteID, map[string]any{"TotalAmount": totalAmount}, "set quote total amount")
}

func (r *QuotingRepository) MarkQuoteEmailSent(ctx context.Context, quoteID uint64) error {
	return r.updateQuote(ctx, quoteID, map[string]any{"EmailSent": true}, "mark quote email sent")
}

func (r *QuotingRepository) updateQuote(ctx context.Context, quoteID uint64, fields map[string]any, action string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.Quote{}).Where("QuoteID = ?", quoteID).Updates(fields)
	if res.Error != nil {
		return errs.Wrap(res.Error, action)
	}
	if res.RowsAffected == 0 {
		return ports.ErrQuoteNotFound
	}
	return nil
}

func (r *QuotingRepository) GetProject(ctx context.Context, projectID uint64) (ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Project{}, err
	}

	var row model.Project
	if err := db.Where("ProjectID = ?", projectID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, ports.ErrProjectNotFound
		}
		return ports.Project{}, errs.Wrap(err, "query project")
	}
	return mapProject(row), nil
}

func (r *QuotingRepository) GetProjectByQuote(ctx context.Context, quoteID uint64) (ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Project{}, err
	}

	var row model.Project
	if err := db.Where("QuoteID = ?", quoteID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, ports.ErrProjectNotFound
		}
		return ports.Project{}, errs.Wrap(err, "query project by quote")
	}
	return mapProject(row), nil
}

func (r *QuotingRepository) ListProjects(ctx context.Context) ([]ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Project
	if err := db.Order("ProjectID asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query projects")
	}

	items := make([]ports.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapProject(row))
	}
	return items, nil
}

func (r *QuotingRepository) CreateProject(ctx context.Context, project ports.Project) (ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Project{}, err
	}

	row := model.Project{
		QuoteID:          project.QuoteID,
		ProjectStartDate: project.ProjectStartDate,
		ProjectEndDate:   project.ProjectEndDate,
		Status:           project.Status,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Project{}, errs.Wrap(err, "insert project")
	}
	return mapProject(row), nil
}

func (r *QuotingRepository) UpdateProject(ctx context.Context, project ports.Project) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.Project{}).
		Where("ProjectID = ?", project.ProjectID).
		Updates(map[string]any{
			"ProjectStartDate": project.ProjectStartDate,
			"ProjectEndDate":   project.ProjectEndDate,
			"Status":           project.Status,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update project")
	}
	if res.RowsAffected == 0 {
		return ports.ErrProjectNotFound
	}
	return nil
}

func (r *QuotingRepository) CreateInvoice(ctx context.Context, invoice ports.Invoice) (ports.Invoice, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Invoice{}, err
	}

	row := model.Invoice{
		QuoteID:     invoice.QuoteID,
		InvoiceDate: invoice.InvoiceDate,
		Amount:      invoice.Amount,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Invoice{}, errs.Wrap(err, "insert invoice")
	}
	invoice.InvoiceID = row.InvoiceID
	return invoice, nil
}

func (r *QuotingRepository) CreatePayment(ctx context.Context, payment ports.Payment) (ports.Payment, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Payment{}, err
	}

	row := model.Payment{
		InvoiceID:   payment.InvoiceID,
		PaymentDate: payment.PaymentDate,
		Amount:      payment.Amount,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Payment{}, errs.Wrap(err, "insert payment")
	}
	payment.PaymentID = row.PaymentID
	return payment, nil
}

func (r *QuotingRepository) CreateFeedback(ctx context.Context, feedback ports.Feedback) (ports.Feedback, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Feedback{}, err
	}

	row := model.Feedback{
		CustomerID: feedback.CustomerID,
		Rating:     feedback.Rating,
		Comments:   feedback.Comments,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Feedback{}, errs.Wrap(err, "insert feedback")
	}
	feedback.FeedbackID = row.FeedbackID
	return feedback, nil
}

func (r *QuotingRepository) SetCustomerPassword(ctx context.Context, customerID uint64, passwordHash string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	var existing model.Password
	err = db.Where("CustomerID = ?", customerID).Take(&existing).Error
	switch {
	case err == nil:
		res := db.Model(&model.Password{}).
			Where("CustomerID = ?", customerID).
			Update("PasswordHash", passwordHash)
		if res.Error != nil {
			return errs.Wrap(res.Error, "update password")
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := model.Password{CustomerID: customerID, PasswordHash: passwordHash}
		if err := db.Create(&row).Error; err != nil {
			return errs.Wrap(err, "insert password")
		}
		return nil
	default:
		return errs.Wrap(err, "query password")
	}
}

// ApplyDelete executes one cascade step. Scopes that reach through the quote
// or invoice tables are expressed as subqueries so each step stays a single
// statement inside the ambient transaction.
func (r *QuotingRepository) ApplyDelete(ctx context.Context, rootID uint64, step quoting.DeleteStep) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	target, err := modelForTable(step.Table)
	if err != nil {
		return 0, err
	}

	customerQuoteIDs := func() *gorm.DB {
		return db.Model(&model.Quote{}).Select("QuoteID").Where("CustomerID = ?", rootID)
	}

	var res *gorm.DB
	switch step.Scope {
	case quoting.ScopeByCustomer:
		res = db.Where("CustomerID = ?", rootID).Delete(target)
	case quoting.ScopeByCustomerQuotes:
		res = db.Where("QuoteID IN (?)", customerQuoteIDs()).Delete(target)
	case quoting.ScopeByCustomerInvoices:
		invoiceIDs := db.Model(&model.Invoice{}).Select("InvoiceID").Where("QuoteID IN (?)", customerQuoteIDs())
		res = db.Where("InvoiceID IN (?)", invoiceIDs).Delete(target)
	case quoting.ScopeByQuote:
		res = db.Where("QuoteID = ?", rootID).Delete(target)
	case quoting.ScopeByQuoteInvoices:
		invoiceIDs := db.Model(&model.Invoice{}).Select("InvoiceID").Where("QuoteID = ?", rootID)
		res = db.Where("InvoiceID IN (?)", invoiceIDs).Delete(target)
	case quoting.ScopeRoot:
		pk, err := primaryKeyColumn(step.Table)
		if err != nil {
			return 0, err
		}
		res = db.Where(pk+" = ?", rootID).Delete(target)
	default:
		return 0, fmt.Errorf("unsupported delete scope %q", step.Scope)
	}

	if res.Error != nil {
		return 0, errs.Wrapf(res.Error, "delete from %s", step.Table)
	}
	return res.RowsAffected, nil
}

func (r *QuotingRepository) GetJobStatus(ctx context.Context, referenceNumber string, email string) (ports.JobStatus, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.JobStatus{}, err
	}

	var row struct {
		QuoteID          uint64
		ReferenceNumber  string
		Email            string
		FirstName        string
		QuoteStatus      string
		MaterialType     string
		FenceLength      float64
		QuoteDate        string
		TotalAmount      *float64
		ProjectStatus    *string
		ProjectStartDate *string
		ProjectEndDate   *string
	}

	err = db.Model(&model.Quote{}).
		Select(`Quotes.QuoteID as quote_id,
			Quotes.ReferenceNumber as reference_number,
			Customers.Email as email,
			Customers.FirstName as first_name,
			Quotes.Status as quote_status,
			Quotes.MaterialType as material_type,
			Quotes.FenceLength as fence_length,
			Quotes.QuoteDate as quote_date,
			Quotes.TotalAmount as total_amount,
			Projects.Status as project_status,
			Projects.ProjectStartDate as project_start_date,
			Projects.ProjectEndDate as project_end_date`).
		Joins("JOIN Customers ON Customers.CustomerID = Quotes.CustomerID").
		Joins("LEFT JOIN Projects ON Projects.QuoteID = Quotes.QuoteID").
		Where("Quotes.ReferenceNumber = ? AND Customers.Email = ?", referenceNumber, email).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.JobStatus{}, ports.ErrJobStatusNotFound
		}
		return ports.JobStatus{}, errs.Wrap(err, "query job status")
	}

	var paid float64
	invoiceIDs := db.Model(&model.Invoice{}).Select("InvoiceID").Where("QuoteID = ?", row.QuoteID)
	if err := db.Model(&model.Payment{}).
		Select("COALESCE(SUM(Amount), 0)").
		Where("InvoiceID IN (?)", invoiceIDs).
		Scan(&paid).Error; err != nil {
		return ports.JobStatus{}, errs.Wrap(err, "sum payments")
	}

	return ports.JobStatus{
		ReferenceNumber:  row.ReferenceNumber,
		Email:            row.Email,
		FirstName:        row.FirstName,
		QuoteStatus:      row.QuoteStatus,
		MaterialType:     row.MaterialType,
		FenceLength:      row.FenceLength,
		QuoteDate:        row.QuoteDate,
		TotalAmount:      row.TotalAmount,
		ProjectStatus:    derefString(row.ProjectStatus),
		ProjectStartDate: derefString(row.ProjectStartDate),
		ProjectEndDate:   derefString(row.ProjectEndDate),
		AmountPaid:       paid,
	}, nil
}

func modelForTable(table quoting.Table) (any, error) {
	switch table {
	case quoting.TableCustomers:
		return &model.Customer{}, nil
	case quoting.TableQuotes:
		return &model.Quote{}, nil
	case quoting.TableProjects:
		return &model.Project{}, nil
	case quoting.TableInvoices:
		return &model.Invoice{}, nil
	case quoting.TablePayments:
		return &model.Payment{}, nil
	case quoting.TableFeedback:
		return &model.Feedback{}, nil
	case quoting.TablePasswords:
		return &model.Password{}, nil
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func primaryKeyColumn(table quoting.Table) (string, error) {
	switch table {
	case quoting.TableCustomers:
		return "CustomerID", nil
	case quoting.TableQuotes:
		return "QuoteID", nil
	default:
		return "", fmt.Errorf("table %q cannot be a cascade root", table)
	}
}

func mapCustomer(row model.Customer) ports.Customer {
	return ports.Customer{
		CustomerID:  row.CustomerID,
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		PhoneNumber: row.PhoneNumber,
		Address:     row.Address,
		City:        row.City,
		State:       row.State,
		ZipCode:     row.ZipCode,
	}
}

func mapQuote(row model.Quote) ports.Quote {
	return ports.Quote{
		QuoteID:         row.QuoteID,
		CustomerID:      row.CustomerID,
		QuoteDate:       row.QuoteDate,
		Status:          row.Status,
		MaterialType:    row.MaterialType,
		FenceLength:     row.FenceLength,
		HOAApproval:     row.HOAApproval,
		CityApproval:    row.CityApproval,
		PhotoPaths:      splitPhotoPaths(row.PhotoPaths),
		Address:         row.Address,
		Address2:        derefString(row.Address2),
		ReferenceNumber: derefString(row.ReferenceNumber),
		RejectionReason: derefString(row.RejectionReason),
		EmailSent:       row.EmailSent,
		TotalAmount:     row.TotalAmount,
	}
}

func mapProject(row model.Project) ports.Project {
	return ports.Project{
		ProjectID:        row.ProjectID,
		QuoteID:          row.QuoteID,
		ProjectStartDate: row.ProjectStartDate,
		ProjectEndDate:   row.ProjectEndDate,
		Status:           row.Status,
	}
}

func splitPhotoPaths(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
