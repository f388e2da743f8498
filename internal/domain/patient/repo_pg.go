package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cathshield/cathshield/internal/platform/db"
)

// queryable abstracts pgxpool.Pool, pgxpool.Conn and pgx.Tx so repositories
// run inside an ambient transaction when one is on the context.
type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const patientColumns = `id, bed_number, initials, insertion_date,
	agitation_delirium, extremes_of_age_weight, comorbidities, immune_nutrition_status,
	expected_admission_length_days, created_at, updated_at`

// -- Patient Repository --

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (
			id, bed_number, initials, insertion_date,
			agitation_delirium, extremes_of_age_weight, comorbidities, immune_nutrition_status,
			expected_admission_length_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.BedNumber, p.Initials, p.InsertionDate,
		p.Factors.AgitationDelirium, p.Factors.ExtremesOfAgeWeight,
		p.Factors.Comorbidities, p.Factors.ImmuneNutritionStatus,
		p.ExpectedAdmissionDays,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			bed_number = $2, initials = $3, insertion_date = $4,
			agitation_delirium = $5, extremes_of_age_weight = $6,
			comorbidities = $7, immune_nutrition_status = $8,
			expected_admission_length_days = $9, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.BedNumber, p.Initials, p.InsertionDate,
		p.Factors.AgitationDelirium, p.Factors.ExtremesOfAgeWeight,
		p.Factors.Comorbidities, p.Factors.ImmuneNutritionStatus,
		p.ExpectedAdmissionDays,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientColumns+` FROM patient ORDER BY bed_number LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.BedNumber, &p.Initials, &p.InsertionDate,
		&p.Factors.AgitationDelirium, &p.Factors.ExtremesOfAgeWeight,
		&p.Factors.Comorbidities, &p.Factors.ImmuneNutritionStatus,
		&p.ExpectedAdmissionDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) scanRow(rows pgx.Rows) (*Patient, error) {
	var p Patient
	err := rows.Scan(
		&p.ID, &p.BedNumber, &p.Initials, &p.InsertionDate,
		&p.Factors.AgitationDelirium, &p.Factors.ExtremesOfAgeWeight,
		&p.Factors.Comorbidities, &p.Factors.ImmuneNutritionStatus,
		&p.ExpectedAdmissionDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// -- Consent Repository --

type consentRepoPG struct {
	pool *pgxpool.Pool
}

func NewConsentRepoPG(pool *pgxpool.Pool) ConsentRepository {
	return &consentRepoPG{pool: pool}
}

func (r *consentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *consentRepoPG) Create(ctx context.Context, c *Consent) error {
	c.ID = uuid.New()

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO consent (id, patient_id, consent_given, consent_language_used, consent_timestamp)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.PatientID, c.ConsentGiven, c.LanguageUsed, c.ConsentTimestamp,
	)
	return err
}

func (r *consentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consent, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consent WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, consent_given, consent_language_used, consent_timestamp, created_at
		FROM consent WHERE patient_id = $1
		ORDER BY consent_timestamp DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var consents []*Consent
	for rows.Next() {
		var c Consent
		if err := rows.Scan(&c.ID, &c.PatientID, &c.ConsentGiven, &c.LanguageUsed, &c.ConsentTimestamp, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		consents = append(consents, &c)
	}
	return consents, total, rows.Err()
}

// -- Image Capture Repository --

type imageRepoPG struct {
	pool *pgxpool.Pool
}

func NewImageCaptureRepoPG(pool *pgxpool.Pool) ImageCaptureRepository {
	return &imageRepoPG{pool: pool}
}

func (r *imageRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *imageRepoPG) Create(ctx context.Context, img *ImageCapture) error {
	img.ID = uuid.New()

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO image_capture (id, patient_id, timestamp, image_type, image_url, notes, capture_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		img.ID, img.PatientID, img.Timestamp, img.ImageType, img.ImageURL, img.Notes, img.CaptureStatus,
	)
	return err
}

func (r *imageRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ImageCapture, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM image_capture WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, timestamp, image_type, image_url, notes, capture_status, created_at
		FROM image_capture WHERE patient_id = $1
		ORDER BY timestamp DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var images []*ImageCapture
	for rows.Next() {
		var img ImageCapture
		if err := rows.Scan(&img.ID, &img.PatientID, &img.Timestamp, &img.ImageType, &img.ImageURL, &img.Notes, &img.CaptureStatus, &img.CreatedAt); err != nil {
			return nil, 0, err
		}
		images = append(images, &img)
	}
	return images, total, rows.Err()
}
