package odoo

import (
	"context"
	"fmt"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"
)

// Domain is a search filter in Odoo's prefix-notation wire format, as
// produced by the domain compiler's ToRPC. The client only reads it.
type Domain = []interface{}

// executeRPC wraps an execute_kw call with connection management and
// context cancellation. The kolo client has no context support, so the
// blocking call runs in a goroutine raced against ctx.Done().
func (c *Client) executeRPC(ctx context.Context, model Model, method string, args []interface{}, kwargs map[string]interface{}, reply interface{}) error {
	uid, rpcClient, err := c.getConnection(ctx)
	if err != nil {
		c.logger.Error("Failed to get Odoo connection",
			zap.Error(err),
			zap.String("model", string(model)),
			zap.String("method", method),
		)
		return err
	}

	// execute_kw signature: (db, uid, password, model, method, args, kwargs).
	// The kwargs dictionary is required even when empty.
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}
	callArgs := []interface{}{c.db, uid, c.password, string(model), method, args, kwargs}

	callChan := make(chan error, 1)
	go func() {
		callChan <- rpcClient.Call("execute_kw", callArgs, reply)
	}()

	select {
	case <-ctx.Done():
		c.logger.Error("Odoo RPC call cancelled",
			zap.Error(ctx.Err()),
			zap.String("model", string(model)),
			zap.String("method", method),
		)
		return ctx.Err()
	case err = <-callChan:
		if err != nil {
			c.logger.Error("Odoo RPC call failed",
				zap.Error(err),
				zap.String("model", string(model)),
				zap.String("method", method),
			)
			return parseRPCError(fmt.Errorf("failed to call %q on model %q: %w", method, model, err))
		}
	}
	return nil
}

// Search returns the IDs of the records matching the domain.
func (c *Client) Search(ctx context.Context, model Model, domain Domain, options ...*Options) ([]int64, error) {
	c.logger.Debug("Odoo search",
		zap.String("model", string(model)),
		zap.Any("domain", domain),
		zap.String("op", "Search"),
	)

	var ids []int64
	err := c.executeRPC(ctx, model, "search", []interface{}{domain}, c.parseOptions(options...), &ids)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Odoo search completed",
		zap.String("model", string(model)),
		zap.Int("results", len(ids)),
		zap.String("op", "Search"),
	)
	return ids, nil
}

// Count returns the number of records matching the domain without
// fetching them.
func (c *Client) Count(ctx context.Context, model Model, domain Domain, options ...*Options) (int64, error) {
	c.logger.Debug("Odoo search_count",
		zap.String("model", string(model)),
		zap.Any("domain", domain),
		zap.String("op", "Count"),
	)

	var count int64
	err := c.executeRPC(ctx, model, "search_count", []interface{}{domain}, c.parseOptions(options...), &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Find combines search and read into one round trip via search_read.
func (c *Client) Find(ctx context.Context, model Model, domain Domain, fields Fields, options ...*Options) ([]map[string]interface{}, error) {
	c.logger.Debug("Odoo search_read",
		zap.String("model", string(model)),
		zap.Any("domain", domain),
		zap.Any("fields", fields),
		zap.String("op", "Find"),
	)

	kwargs := c.parseOptions(options...)
	if len(fields) > 0 {
		kwargs["fields"] = fields.ToRPC()
	}

	var records []map[string]interface{}
	err := c.executeRPC(ctx, model, "search_read", []interface{}{domain}, kwargs, &records)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Odoo search_read completed",
		zap.String("model", string(model)),
		zap.Int("records", len(records)),
		zap.String("op", "Find"),
	)
	return records, nil
}

// Read fetches the given fields for the records with the given IDs.
func (c *Client) Read(ctx context.Context, model Model, ids []int64, fields Fields, options ...*Options) ([]map[string]interface{}, error) {
	c.logger.Debug("Odoo read",
		zap.String("model", string(model)),
		zap.Any("ids", ids),
		zap.Any("fields", fields),
		zap.String("op", "Read"),
	)

	if len(ids) == 0 {
		return []map[string]interface{}{}, nil
	}

	var records []map[string]interface{}
	err := c.executeRPC(ctx, model, "read", []interface{}{ids, fields.ToRPC()}, c.parseOptions(options...), &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Create creates one record and returns its ID.
func (c *Client) Create(ctx context.Context, model Model, data Data, options ...*Options) (int64, error) {
	c.logger.Debug("Odoo create",
		zap.String("model", string(model)),
		zap.Any("data", data),
		zap.String("op", "Create"),
	)

	var newID int64
	err := c.executeRPC(ctx, model, "create", []interface{}{data.ToRPC()}, c.parseOptions(options...), &newID)
	if err != nil {
		return 0, err
	}

	c.logger.Info("Odoo create completed",
		zap.String("model", string(model)),
		zap.Int64("id", newID),
		zap.String("op", "Create"),
	)
	return newID, nil
}

// Write applies the same field assignments to every record in ids.
func (c *Client) Write(ctx context.Context, model Model, ids []int64, data Data, options ...*Options) (bool, error) {
	c.logger.Debug("Odoo write",
		zap.String("model", string(model)),
		zap.Any("ids", ids),
		zap.Any("data", data),
		zap.String("op", "Write"),
	)

	if len(ids) == 0 {
		return false, fmt.Errorf("no record IDs provided for write")
	}

	var ok bool
	err := c.executeRPC(ctx, model, "write", []interface{}{ids, data.ToRPC()}, c.parseOptions(options...), &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Delete unlinks the records with the given IDs.
func (c *Client) Delete(ctx context.Context, model Model, ids []int64, options ...*Options) (bool, error) {
	c.logger.Debug("Odoo unlink",
		zap.String("model", string(model)),
		zap.Any("ids", ids),
		zap.String("op", "Delete"),
	)

	if len(ids) == 0 {
		return false, fmt.Errorf("no record IDs provided for deletion")
	}

	var ok bool
	err := c.executeRPC(ctx, model, "unlink", []interface{}{ids}, c.parseOptions(options...), &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// FieldsGet retrieves metadata for the model's fields. attributes limits
// which metadata keys are returned; empty means all of them.
func (c *Client) FieldsGet(ctx context.Context, model Model, attributes []string, options ...*Options) (map[string]map[string]interface{}, error) {
	c.logger.Debug("Odoo fields_get",
		zap.String("model", string(model)),
		zap.Any("attributes", attributes),
		zap.String("op", "FieldsGet"),
	)

	kwargs := c.parseOptions(options...)
	if len(attributes) > 0 {
		kwargs["attributes"] = attributes
	}

	var fields map[string]map[string]interface{}
	err := c.executeRPC(ctx, model, "fields_get", []interface{}{}, kwargs, &fields)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// ServerVersion queries the common endpoint for instance metadata. It
// needs no authentication.
func (c *Client) ServerVersion(ctx context.Context) (*Version, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	tr := c.transport
	if tr == nil {
		tr = defaultTransport()
	}
	commonClient, err := xmlrpc.NewClient(fmt.Sprintf("%s/xmlrpc/2/common", c.url), tr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Odoo common endpoint: %w", err)
	}
	defer commonClient.Close()

	var v Version
	if err := commonClient.Call("version", nil, &v); err != nil {
		return nil, parseRPCError(err)
	}
	return &v, nil
}

// CallKw executes an arbitrary model method through execute_kw. The caller
// type-asserts the raw result.
func (c *Client) CallKw(ctx context.Context, model Model, method string, args []interface{}, kwargs map[string]interface{}) (interface{}, error) {
	c.logger.Debug("Odoo execute_kw",
		zap.String("model", string(model)),
		zap.String("method", method),
		zap.Any("args", args),
		zap.String("op", "CallKw"),
	)

	var result interface{}
	if err := c.executeRPC(ctx, model, method, args, kwargs, &result); err != nil {
		return nil, err
	}
	return result, nil
}
