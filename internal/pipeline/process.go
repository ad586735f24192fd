package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"c3track/internal"
	"c3track/internal/board"
	"c3track/internal/classify"
	"c3track/internal/config"
	"c3track/internal/extract"
	"c3track/internal/grammar"
	"c3track/internal/storage"
)

const (
	CapabilityPONumbers    = "extract_c3_po_numbers"
	CapabilityAppointments = "extract_c3_appointment_details"
)

// candidateScanCap bounds how many group items are examined per batch when
// looking for unclassified rows.
const candidateScanCap = 50

type Service struct {
	db     *storage.DB
	client *board.Client
	cfg    config.Config
}

func NewService(db *storage.DB, client *board.Client, cfg config.Config) *Service {
	return &Service{db: db, client: client, cfg: cfg}
}

// ExtractPONumbers fetches the updates for the given items and returns, per
// item, the deduplicated PO list plus the update count. The id list is
// required; an empty one aborts before any board call.
func (s *Service) ExtractPONumbers(ctx context.Context, itemIDs []string) ([]internal.POResult, error) {
	if len(itemIDs) == 0 {
		return nil, errors.New("at least one item id is required")
	}

	updatesByItem, err := s.client.UpdatesForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	results := make([]internal.POResult, 0, len(itemIDs))
	for _, id := range itemIDs {
		updates := updatesByItem[id]
		lists := make([][]string, 0, len(updates))
		for _, upd := range updates {
			lists = append(lists, extract.POsFromUpdateBody(upd.Body))
		}
		results = append(results, internal.POResult{
			ItemID:      id,
			PONumbers:   extract.MergePONumbers(lists...),
			UpdateCount: len(updates),
		})
	}

	_ = s.db.InsertRun(traceID(), CapabilityPONumbers, map[string]int{"items": len(results)})
	return results, nil
}

// ExtractAppointments runs one classification batch: select unclassified
// items in the configured group, parse each through its vendor grammar,
// classify New vs Update off frequency tables built once for the whole
// batch, write the record back to the board, and save a snapshot. A per-item
// write-back failure is annotated on that item's row type and never aborts
// siblings; board protocol errors abort the whole batch with no partials.
func (s *Service) ExtractAppointments(ctx context.Context, limit int) (internal.BatchResult, error) {
	start := time.Now()
	if limit < 1 {
		limit = 1
	}
	if limit > candidateScanCap {
		limit = candidateScanCap
	}

	columns, err := s.client.Columns(ctx, s.cfg.BoardID)
	if err != nil {
		return internal.BatchResult{}, err
	}
	byTitle := board.ColumnsByTitle(columns)
	rowTypeColumnID := ""
	if col, ok := byTitle[strings.ToLower(s.cfg.RowTypeColumnTitle)]; ok {
		rowTypeColumnID = col.ID
	}

	items, err := s.selectCandidates(ctx, rowTypeColumnID, limit)
	if err != nil {
		return internal.BatchResult{}, err
	}

	trace := traceID()
	if len(items) == 0 {
		_ = s.db.InsertRun(trace, CapabilityAppointments, map[string]int{"items": 0})
		return internal.BatchResult{TraceID: trace, Items: []internal.ItemOutcome{}}, nil
	}

	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	updatesByItem, err := s.client.UpdatesForItems(ctx, itemIDs)
	if err != nil {
		return internal.BatchResult{}, err
	}

	// Frequency snapshots are built once per batch; colliding keys within a
	// batch classify consistently.
	sobeysTable, err := s.buildSobeysTable(ctx)
	if err != nil {
		return internal.BatchResult{}, err
	}
	loblawTable, err := s.buildLoblawTable(ctx)
	if err != nil {
		return internal.BatchResult{}, err
	}

	newCount, updateCount := 0, 0
	outcomes := make([]internal.ItemOutcome, 0, len(items))
	for _, item := range items {
		workItem := internal.WorkItem{
			ID:      item.ID,
			Name:    item.Name,
			Group:   item.Group.Title,
			Updates: updatesByItem[item.ID],
		}

		g := grammar.Detect(workItem.Name)
		record := g.Extract(workItem)

		var table classify.FrequencyTable = loblawTable
		if g.Vendor() == internal.VendorSobeys {
			table = sobeysTable
		}
		rowType := classify.Classify(record.NaturalKey(), table)
		switch rowType {
		case internal.RowTypeNew:
			newCount++
		case internal.RowTypeUpdate:
			updateCount++
		}

		rowTypeValue := string(rowType)
		payload := board.BuildColumnValues(byTitle, record, s.cfg.RowTypeColumnTitle, rowTypeValue)
		if len(payload) > 0 {
			if err := s.client.ChangeColumnValues(ctx, s.cfg.BoardID, item.ID, payload); err != nil {
				rowTypeValue = fmt.Sprintf("%s (update failed: %v)", rowTypeValue, err)
			}
		}

		outcome := internal.ItemOutcome{
			ItemID:            item.ID,
			AppointmentRecord: record,
			RowType:           rowTypeValue,
		}
		if err := s.db.InsertOutcome(trace, outcome); err != nil {
			return internal.BatchResult{}, err
		}
		outcomes = append(outcomes, outcome)
	}

	savedPath := s.saveSnapshot(outcomes)

	_ = s.db.InsertRun(trace, CapabilityAppointments, map[string]int{
		"items":   len(outcomes),
		"new":     newCount,
		"update":  updateCount,
		"totalMs": int(time.Since(start).Milliseconds()),
	})

	return internal.BatchResult{
		TraceID:   trace,
		Items:     outcomes,
		Count:     len(outcomes),
		SavedPath: savedPath,
	}, nil
}

// selectCandidates walks the board for items in the configured group whose
// row-type column is still empty.
func (s *Service) selectCandidates(ctx context.Context, rowTypeColumnID string, limit int) ([]board.Item, error) {
	groupItems := []board.Item{}
	cursor := ""
	for len(groupItems) < candidateScanCap {
		items, next, err := s.client.ItemsPage(ctx, s.cfg.BoardID, 100, cursor)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if strings.TrimSpace(item.Group.Title) != strings.TrimSpace(s.cfg.GroupName) {
				continue
			}
			groupItems = append(groupItems, item)
		}
		if next == "" || len(items) == 0 {
			break
		}
		cursor = next
	}
	if len(groupItems) > candidateScanCap {
		groupItems = groupItems[:candidateScanCap]
	}
	if len(groupItems) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(groupItems))
	for _, item := range groupItems {
		ids = append(ids, item.ID)
	}
	valuesByItem, err := s.client.ColumnValuesForItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	selected := []board.Item{}
	for _, item := range groupItems {
		if rowTypeColumnID != "" && columnText(valuesByItem[item.ID], rowTypeColumnID) != "" {
			continue
		}
		selected = append(selected, item)
		if len(selected) >= limit {
			break
		}
	}
	return selected, nil
}

func (s *Service) buildSobeysTable(ctx context.Context) (classify.NameSubstringCounts, error) {
	refs, err := s.client.AllItemRefs(ctx, s.cfg.BoardID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return classify.NameSubstringCounts(names), nil
}

func (s *Service) buildLoblawTable(ctx context.Context) (classify.KeyCounts, error) {
	refs, err := s.client.ItemsNamedWithin(ctx, s.cfg.BoardID, "Loblaw", s.cfg.LoblawDateColumnID, s.cfg.LookbackWeeks)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return classify.KeyCounts{}, nil
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	updatesByItem, err := s.client.UpdatesForItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	counts := classify.KeyCounts{}
	for _, id := range ids {
		for _, upd := range updatesByItem[id] {
			if ref := grammar.ReferenceNumber(upd.Body); ref != "" {
				counts[ref]++
			}
		}
	}
	return counts, nil
}

// saveSnapshot writes the batch outcomes as pretty-printed JSON into the
// output directory. Failures are reported inline, never fatally.
func (s *Service) saveSnapshot(outcomes []internal.ItemOutcome) string {
	if len(outcomes) == 0 {
		return ""
	}
	blob, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return fmt.Sprintf("(save failed: %v)", err)
	}
	path := filepath.Join(s.cfg.OutputDir, s.cfg.SnapshotFilename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Sprintf("(save failed: %v)", err)
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Sprintf("(save failed: %v)", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func columnText(values []board.ColumnValue, columnID string) string {
	for _, cv := range values {
		if strings.EqualFold(strings.TrimSpace(cv.ID), strings.TrimSpace(columnID)) {
			return strings.TrimSpace(cv.Text)
		}
	}
	return ""
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
