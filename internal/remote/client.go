package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// Row is one loosely-keyed record as the remote emits it; key spellings
// vary between deployments, so resolution happens in the normalize package.
type Row map[string]any

// Read actions understood by the remote data service.
const (
	ActionGetAllMenu     = "getAllMenu"
	ActionGetOrders      = "getOrders"
	ActionGetInventory   = "getInventoryData"
	ActionGetFinanceData = "getFinanceReport"
)

// Mutation actions understood by the remote mutation service.
const (
	ActionCreateOrder       = "createOrder"
	ActionUpdateOrderStatus = "updateOrderStatus"
	ActionAddMenuItem       = "addMenuItem"
	ActionEditMenuItem      = "editMenuItem"
	ActionDeleteMenuItem    = "deleteMenuItem"
	ActionCreateStockIn     = "createNhapKho"
	ActionUpdateInventory   = "updateInventory"
	ActionCreateTransaction = "createTransaction"
	ActionDeleteTransaction = "deleteTransaction"
	ActionSyncDatabase      = "syncDatabase"
)

// envelope is the wrapped response form. The service may also return a
// bare JSON array with no wrapper at all.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InventoryPayload is the object form of getInventoryData's data field.
type InventoryPayload struct {
	Materials []Row `json:"materials"`
	Logs      []Row `json:"logs"`
}

// Client talks to the remote store. Timeouts are deliberately left to the
// transport; the service applies its own execution limits.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: base, http: &http.Client{}}
}

// FetchRows performs a read action and returns the row array, whether the
// body was a bare array or a {status,data} wrapper.
func (c *Client) FetchRows(ctx context.Context, action string) ([]Row, error) {
	raw, err := c.get(ctx, action)
	if err != nil {
		return nil, err
	}
	data, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &Error{Category: CategoryMalformed, Err: err}
	}
	return rows, nil
}

// FetchInventory reads the inventory feed, whose data field is an object
// holding material rows plus stock-movement logs.
func (c *Client) FetchInventory(ctx context.Context) (*InventoryPayload, error) {
	raw, err := c.get(ctx, ActionGetInventory)
	if err != nil {
		return nil, err
	}
	data, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	var payload InventoryPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		// Older deployments return a bare material array.
		var rows []Row
		if aerr := json.Unmarshal(data, &rows); aerr != nil {
			return nil, &Error{Category: CategoryMalformed, Err: err}
		}
		payload.Materials = rows
	}
	return &payload, nil
}

// Mutate performs a state-changing action. Success is the status sentinel
// in the body, not the HTTP status: a 200 carrying {"status":"fail"} is a
// rejection.
func (c *Client) Mutate(ctx context.Context, action string, payload map[string]any) error {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["action"] = action

	buf, err := json.Marshal(body)
	if err != nil {
		return &Error{Category: CategoryMalformed, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(buf))
	if err != nil {
		return &Error{Category: CategoryTransport, Err: err}
	}
	// text/plain keeps the Apps-Script endpoint from preflighting.
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Category: CategoryMalformed, Err: err}
	}
	if env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = env.Status
		}
		if isBusyMessage(msg) {
			return &Error{Category: CategoryBusy, Message: msg}
		}
		return &Error{Category: CategoryRejected, Message: msg}
	}
	return nil
}

func (c *Client) get(ctx context.Context, action string) ([]byte, error) {
	u := c.base + "?action=" + url.QueryEscape(action)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Category: CategoryTransport, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}
	return raw, nil
}

// unwrap returns the data portion of a response body, accepting both the
// bare-array and the {status,data} envelope forms.
func unwrap(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &Error{Category: CategoryMalformed, Err: err}
	}
	if env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = "missing success status"
		}
		if isBusyMessage(msg) {
			return nil, &Error{Category: CategoryBusy, Message: msg}
		}
		return nil, &Error{Category: CategoryMalformed, Message: msg}
	}
	return env.Data, nil
}
