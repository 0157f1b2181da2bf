package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/watermark"
)

// DocumentStatus tracks a document through its delivery lifecycle.
type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusInTransit  DocumentStatus = "in_transit"
	StatusDelivered  DocumentStatus = "delivered"
	StatusError      DocumentStatus = "error_message"
)

// Document is a purchased copy of a template with its own value state. Test
// documents are watermarked whenever their SVG is read; Upgrade flips them
// to paid and strips the markers.
type Document struct {
	ID         string         `json:"id"`
	TemplateID string         `json:"templateId"`
	Name       string         `json:"name"`
	Fields     schema.Schema  `json:"fields,omitempty"`
	Test       bool           `json:"test"`
	TrackingID string         `json:"trackingId,omitempty"`
	Status     DocumentStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// CreateDocument mints a new document from a template, copying its SVG and
// schema. An empty name is auto-assigned "<template name> #<n>" where n
// counts this template's documents.
func (s *Store) CreateDocument(ctx context.Context, templateID, name string) (Document, error) {
	tpl, err := s.Template(ctx, templateID)
	if err != nil {
		return Document{}, err
	}
	svgText, err := s.TemplateSVG(ctx, templateID)
	if err != nil {
		return Document{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Document{}, fmt.Errorf("store: create document: %w", err)
	}
	defer tx.Rollback()

	name = strings.TrimSpace(name)
	if name == "" {
		var count int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM documents WHERE template_id=?`, templateID).Scan(&count)
		if err != nil {
			return Document{}, fmt.Errorf("store: create document: %w", err)
		}
		name = fmt.Sprintf("%s #%d", tpl.Name, count+1)
	}

	parsed, err := s.parseSchema(ctx, name, svgText)
	if err != nil {
		return Document{}, err
	}
	fieldsJSON, err := marshalFields(parsed)
	if err != nil {
		return Document{}, err
	}
	blob, err := compressSVG(svgText)
	if err != nil {
		return Document{}, err
	}

	now := s.now()
	doc := Document{
		ID:         s.newID(),
		TemplateID: templateID,
		Name:       name,
		Fields:     parsed,
		Test:       true,
		Status:     StatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents(id, template_id, name, svg, fields, test, tracking_id, status, created_at, updated_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		doc.ID, doc.TemplateID, doc.Name, blob, fieldsJSON, 1, nil, string(doc.Status),
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("store: create document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Document{}, fmt.Errorf("store: create document: %w", err)
	}
	return doc, nil
}

// Document fetches one document with its field schema.
func (s *Store) Document(ctx context.Context, id string) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, template_id, name, fields, test, tracking_id, status, created_at, updated_at
		 FROM documents WHERE id=?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("store: document %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("store: load document: %w", err)
	}
	return doc, nil
}

// DocumentSVG returns the document text. Test documents come back
// watermarked; the stored bytes stay clean.
func (s *Store) DocumentSVG(ctx context.Context, id string) (string, error) {
	var (
		blob []byte
		test int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT svg, test FROM documents WHERE id=?`, id).Scan(&blob, &test)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("store: document %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("store: load document svg: %w", err)
	}

	text, err := decompressSVG(blob)
	if err != nil {
		return "", err
	}
	if test != 0 {
		text = watermark.Add(text)
	}
	return text, nil
}

// ApplyValues runs the update engine over the stored document and persists
// both the mutated SVG and the refreshed schema.
func (s *Store) ApplyValues(ctx context.Context, id string, values map[string]schema.Value) (Document, error) {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return Document{}, err
	}

	var blob []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT svg FROM documents WHERE id=?`, id).Scan(&blob)
	if err != nil {
		return Document{}, fmt.Errorf("store: load document svg: %w", err)
	}
	text, err := decompressSVG(blob)
	if err != nil {
		return Document{}, err
	}

	updated, refreshed, err := s.engine.Apply(text, doc.Fields, values)
	if err != nil {
		return Document{}, fmt.Errorf("store: apply values: %w", err)
	}

	fieldsJSON, err := marshalFields(refreshed)
	if err != nil {
		return Document{}, err
	}
	newBlob, err := compressSVG(updated)
	if err != nil {
		return Document{}, err
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET svg=?, fields=?, updated_at=? WHERE id=?`,
		newBlob, fieldsJSON, now, id)
	if err != nil {
		return Document{}, fmt.Errorf("store: apply values: %w", err)
	}

	doc.Fields = refreshed
	doc.UpdatedAt = now
	return doc, nil
}

// Upgrade converts a test document to paid: any watermark markers are
// stripped from the stored text and the test flag clears. Upgrading a paid
// document is a no-op.
func (s *Store) Upgrade(ctx context.Context, id string) (Document, error) {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if !doc.Test {
		return doc, nil
	}

	var blob []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT svg FROM documents WHERE id=?`, id).Scan(&blob)
	if err != nil {
		return Document{}, fmt.Errorf("store: load document svg: %w", err)
	}
	text, err := decompressSVG(blob)
	if err != nil {
		return Document{}, err
	}

	clean := watermark.Remove(text)
	newBlob, err := compressSVG(clean)
	if err != nil {
		return Document{}, err
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET svg=?, test=0, updated_at=? WHERE id=?`,
		newBlob, now, id)
	if err != nil {
		return Document{}, fmt.Errorf("store: upgrade document: %w", err)
	}

	doc.Test = false
	doc.UpdatedAt = now
	return doc, nil
}

// SetTracking assigns a tracking id to a document. Tracking ids are unique
// across documents; assigning one already in use returns ErrTrackingTaken.
func (s *Store) SetTracking(ctx context.Context, id, trackingID string) error {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return errors.New("store: tracking id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: set tracking: %w", err)
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE tracking_id=? AND id<>?`, trackingID, id).Scan(&taken)
	if err != nil {
		return fmt.Errorf("store: set tracking: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("store: tracking %q: %w", trackingID, ErrTrackingTaken)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE documents SET tracking_id=?, updated_at=? WHERE id=?`,
		trackingID, s.now(), id)
	if err != nil {
		return fmt.Errorf("store: set tracking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: set tracking: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("store: document %q: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// SetStatus moves a document to a new delivery status.
func (s *Store) SetStatus(ctx context.Context, id string, status DocumentStatus) error {
	switch status {
	case StatusProcessing, StatusInTransit, StatusDelivered, StatusError:
	default:
		return fmt.Errorf("store: unknown status %q", status)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE documents SET status=?, updated_at=? WHERE id=?`,
		string(status), s.now(), id)
	if err != nil {
		return fmt.Errorf("store: set status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: set status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("store: document %q: %w", id, ErrNotFound)
	}
	return nil
}

// FindByTracking looks a document up by tracking id. This backs the public
// status lookup, so it matches exactly or not at all.
func (s *Store) FindByTracking(ctx context.Context, trackingID string) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, template_id, name, fields, test, tracking_id, status, created_at, updated_at
		 FROM documents WHERE tracking_id=?`, trackingID)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("store: tracking %q: %w", trackingID, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("store: load document: %w", err)
	}
	return doc, nil
}

func scanDocument(row *sql.Row) (Document, error) {
	var (
		doc        Document
		fieldsJSON string
		test       int
		tracking   sql.NullString
		status     string
	)
	err := row.Scan(&doc.ID, &doc.TemplateID, &doc.Name, &fieldsJSON, &test,
		&tracking, &status, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return Document{}, err
	}

	doc.Test = test != 0
	doc.TrackingID = tracking.String
	doc.Status = DocumentStatus(status)
	doc.Fields, err = unmarshalFields(fieldsJSON)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}
