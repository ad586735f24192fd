package board

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"c3track/internal"
)

// updatesPerItem caps how many update bodies are pulled per item; the board
// keeps the full history but only recent notifications matter.
const updatesPerItem = 50

const itemBatchSize = 50

type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ColumnValue struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Group        Group         `json:"group"`
	ColumnValues []ColumnValue `json:"column_values"`
}

type itemsPage struct {
	Cursor string `json:"cursor"`
	Items  []Item `json:"items"`
}

// Columns returns the board's column descriptors so callers can resolve
// destination columns by title and format values by type.
func (c *Client) Columns(ctx context.Context, boardID int64) ([]internal.BoardColumn, error) {
	query := `
query BoardColumns($boardIds: [ID!]!) {
  boards(ids: $boardIds) {
    columns { id title type }
  }
}`
	data, err := c.execute(ctx, query, map[string]any{"boardIds": []string{strconv.FormatInt(boardID, 10)}})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Boards []struct {
			Columns []internal.BoardColumn `json:"columns"`
		} `json:"boards"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if len(payload.Boards) == 0 {
		return nil, nil
	}
	return payload.Boards[0].Columns, nil
}

// ItemsPage fetches one page of board items. Pass an empty cursor for the
// first page; an empty returned cursor means the listing is exhausted.
func (c *Client) ItemsPage(ctx context.Context, boardID int64, limit int, cursor string) ([]Item, string, error) {
	if limit > 500 {
		limit = 500
	}

	if cursor != "" {
		query := `
query NextItems($cursor: String!) {
  next_items_page(cursor: $cursor) {
    cursor
    items { id name group { id title } }
  }
}`
		data, err := c.execute(ctx, query, map[string]any{"cursor": cursor})
		if err != nil {
			return nil, "", err
		}
		var payload struct {
			NextItemsPage itemsPage `json:"next_items_page"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, "", err
		}
		return payload.NextItemsPage.Items, payload.NextItemsPage.Cursor, nil
	}

	query := `
query BoardItems($boardIds: [ID!]!, $limit: Int!) {
  boards(ids: $boardIds) {
    items_page(limit: $limit) {
      cursor
      items { id name group { id title } }
    }
  }
}`
	data, err := c.execute(ctx, query, map[string]any{
		"boardIds": []string{strconv.FormatInt(boardID, 10)},
		"limit":    limit,
	})
	if err != nil {
		return nil, "", err
	}
	var payload struct {
		Boards []struct {
			ItemsPage itemsPage `json:"items_page"`
		} `json:"boards"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, "", err
	}
	if len(payload.Boards) == 0 {
		return nil, "", nil
	}
	return payload.Boards[0].ItemsPage.Items, payload.Boards[0].ItemsPage.Cursor, nil
}

// AllItemRefs walks every page of the board and returns id+name for each
// item. The Sobeys frequency table needs the complete name list.
func (c *Client) AllItemRefs(ctx context.Context, boardID int64) ([]internal.ItemRef, error) {
	refs := []internal.ItemRef{}
	cursor := ""
	for {
		items, next, err := c.ItemsPage(ctx, boardID, 500, cursor)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			refs = append(refs, internal.ItemRef{ID: item.ID, Name: item.Name})
		}
		if next == "" || len(items) == 0 {
			break
		}
		cursor = next
	}
	return refs, nil
}

// UpdatesForItems fetches the update bodies for the given item ids, batching
// requests so a large id list stays within query-size limits.
func (c *Client) UpdatesForItems(ctx context.Context, itemIDs []string) (map[string][]internal.RawUpdate, error) {
	query := `
query ItemUpdates($ids: [ID!]!) {
  items(ids: $ids) {
    id
    updates(limit: ` + strconv.Itoa(updatesPerItem) + `) { id body }
  }
}`

	out := map[string][]internal.RawUpdate{}
	for start := 0; start < len(itemIDs); start += itemBatchSize {
		end := start + itemBatchSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}

		data, err := c.execute(ctx, query, map[string]any{"ids": itemIDs[start:end]})
		if err != nil {
			return nil, err
		}
		var payload struct {
			Items []struct {
				ID      string               `json:"id"`
				Updates []internal.RawUpdate `json:"updates"`
			} `json:"items"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		for _, item := range payload.Items {
			out[item.ID] = item.Updates
		}
	}
	return out, nil
}

// ColumnValuesForItems fetches id+text column values for the given item ids.
func (c *Client) ColumnValuesForItems(ctx context.Context, itemIDs []string) (map[string][]ColumnValue, error) {
	query := `
query ItemColumnValues($ids: [ID!]!) {
  items(ids: $ids) {
    id
    column_values { id text }
  }
}`

	out := map[string][]ColumnValue{}
	for start := 0; start < len(itemIDs); start += itemBatchSize {
		end := start + itemBatchSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}

		data, err := c.execute(ctx, query, map[string]any{"ids": itemIDs[start:end]})
		if err != nil {
			return nil, err
		}
		var payload struct {
			Items []struct {
				ID           string        `json:"id"`
				ColumnValues []ColumnValue `json:"column_values"`
			} `json:"items"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		for _, item := range payload.Items {
			out[item.ID] = item.ColumnValues
		}
	}
	return out, nil
}

// ItemsNamedWithin returns items whose name contains nameContains and that
// were created within the trailing window, using the board's server-side
// rule filter. When the filtered query fails (older API tiers reject
// QueryParamsInput rules), it falls back to a full scan filtered by name
// only, which widens the window but never loses items.
func (c *Client) ItemsNamedWithin(ctx context.Context, boardID int64, nameContains, dateColumnID string, weeks int) ([]internal.ItemRef, error) {
	refs, err := c.filteredItemRefs(ctx, boardID, nameContains, dateColumnID, weeks)
	if err == nil {
		return refs, nil
	}

	all, scanErr := c.AllItemRefs(ctx, boardID)
	if scanErr != nil {
		return nil, scanErr
	}
	out := []internal.ItemRef{}
	for _, ref := range all {
		if containsName(ref.Name, nameContains) {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (c *Client) filteredItemRefs(ctx context.Context, boardID int64, nameContains, dateColumnID string, weeks int) ([]internal.ItemRef, error) {
	query := `
query FilteredItems($boardIds: [ID!]!, $limit: Int!, $queryParams: ItemsQuery) {
  boards(ids: $boardIds) {
    items_page(limit: $limit, query_params: $queryParams) {
      cursor
      items { id name }
    }
  }
}`
	queryParams := map[string]any{
		"rules": []map[string]any{
			{
				"column_id":     "name",
				"compare_value": []string{nameContains},
				"operator":      "contains_text",
			},
			{
				"column_id":         dateColumnID,
				"compare_value":     []string{strconv.Itoa(weeks), "WEEKS"},
				"compare_attribute": "CREATED_AT",
				"operator":          "within_the_last",
			},
		},
		"operator": "and",
	}

	data, err := c.execute(ctx, query, map[string]any{
		"boardIds":    []string{strconv.FormatInt(boardID, 10)},
		"limit":       500,
		"queryParams": queryParams,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Boards []struct {
			ItemsPage itemsPage `json:"items_page"`
		} `json:"boards"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if len(payload.Boards) == 0 {
		return nil, nil
	}

	page := payload.Boards[0].ItemsPage
	refs := toRefs(page.Items)
	cursor := page.Cursor
	for cursor != "" && len(page.Items) > 0 {
		items, next, err := c.ItemsPage(ctx, boardID, 500, cursor)
		if err != nil {
			return nil, err
		}
		refs = append(refs, toRefs(items)...)
		if next == "" || len(items) == 0 {
			break
		}
		cursor = next
	}
	return refs, nil
}

// ChangeColumnValues writes a column_values payload onto one item via the
// change_multiple_column_values mutation.
func (c *Client) ChangeColumnValues(ctx context.Context, boardID int64, itemID string, columnValues map[string]any) error {
	encoded, err := json.Marshal(columnValues)
	if err != nil {
		return err
	}

	mutation := `
mutation ChangeColumns($board_id: ID!, $item_id: ID!, $column_values: JSON!) {
  change_multiple_column_values(
    board_id: $board_id,
    item_id: $item_id,
    column_values: $column_values
  ) { id }
}`
	_, err = c.execute(ctx, mutation, map[string]any{
		"board_id":      strconv.FormatInt(boardID, 10),
		"item_id":       itemID,
		"column_values": string(encoded),
	})
	return err
}

func toRefs(items []Item) []internal.ItemRef {
	out := make([]internal.ItemRef, 0, len(items))
	for _, item := range items {
		out = append(out, internal.ItemRef{ID: item.ID, Name: item.Name})
	}
	return out
}

func containsName(name, probe string) bool {
	return probe != "" && strings.Contains(name, probe)
}
