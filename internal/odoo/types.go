package odoo

// Model is an Odoo model name, e.g. "res.users" or "res.partner".
type Model string

// Models the CLI defaults to or mentions in its help text.
const (
	ModelResUsers   Model = "res.users"   // users, the default query target
	ModelResPartner Model = "res.partner" // contacts
	ModelIrModel    Model = "ir.model"    // model metadata, used by `explain models`
)

// Fields names the record fields an operation should return. Empty means
// the server default (all fields).
type Fields []string

// ToRPC converts Fields to the plain []string the RPC layer marshals.
func (f Fields) ToRPC() []string {
	return []string(f)
}

// Data holds field/value assignments for create and write operations.
type Data map[string]interface{}

// ToRPC converts Data to the plain map the RPC layer marshals.
func (d Data) ToRPC() map[string]interface{} {
	return map[string]interface{}(d)
}

// Context is the Odoo context dictionary that influences server-side
// behavior (language, timezone, active_test, ...).
type Context map[string]interface{}

// Options are the common keyword arguments for search-family methods.
type Options struct {
	Context Context
	Limit   int
	Offset  int
	Order   string
	Extra   map[string]interface{}
}

// ToRPC converts Options into the kwargs map execute_kw expects. Zero
// values are omitted: Odoo ignores non-positive limits and offsets.
func (o *Options) ToRPC() map[string]interface{} {
	kwargs := make(map[string]interface{})
	if o == nil {
		return kwargs
	}

	if len(o.Context) > 0 {
		kwargs["context"] = o.Context
	}
	if o.Limit > 0 {
		kwargs["limit"] = o.Limit
	}
	if o.Offset > 0 {
		kwargs["offset"] = o.Offset
	}
	if o.Order != "" {
		kwargs["order"] = o.Order
	}
	for k, v := range o.Extra {
		kwargs[k] = v
	}
	return kwargs
}

func (c *Client) parseOptions(options ...*Options) map[string]interface{} {
	if len(options) == 0 || options[0] == nil {
		return map[string]interface{}{}
	}
	return options[0].ToRPC()
}

// Version holds the instance metadata reported by the common endpoint.
type Version struct {
	ServerVersion   string `xmlrpc:"server_version"`
	ServerSerie     string `xmlrpc:"server_serie"`
	ProtocolVersion int    `xmlrpc:"protocol_version"`
}
