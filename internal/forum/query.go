package forum

// Descriptor carries the metadata of a captured error: the error's type name
// (e.g. "*fs.PathError", "ZeroDivisionError") and its rendered message.
// Built once when the error is intercepted and never mutated afterwards.
type Descriptor struct {
	Type    string
	Message string
	Stack   []string
}

// Search criteria values. Anything other than CriteriaNarrow behaves as broad.
const (
	CriteriaBroad  = "broad"
	CriteriaNarrow = "narrow"
)

// DefaultTop is how many topics a search keeps when the caller does not say.
const DefaultTop = 5

// Options selects how the search query is assembled and how many topics to
// keep. Unrecognized sort/status values are ignored rather than rejected, so
// a typo degrades to an unfiltered query instead of an error.
type Options struct {
	Criteria string
	SortBy   string
	Status   string
	Top      int
}

// See https://docs.discourse.org/#tag/Search for the query language.
var allowedSorts = map[string]bool{
	"latest":       true,
	"likes":        true,
	"views":        true,
	"latest_topic": true,
}

var allowedStatuses = map[string]bool{
	"open":        true,
	"closed":      true,
	"public":      true,
	"archived":    true,
	"noreplies":   true,
	"single_user": true,
	"solved":      true,
	"unsolved":    true,
}

// BuildQuery assembles the Discourse search query for a captured error.
// Broad criteria searches on the type name alone; narrow appends the message
// as "<type>: <message>". Recognized sort and status values append
// "order:<sort>" and "status:<status>" clauses in that fixed order.
// The message is interpolated verbatim, colons and quotes included, matching
// what the search box itself would receive.
func BuildQuery(d Descriptor, o Options) string {
	query := d.Type

	if o.Criteria == CriteriaNarrow {
		query = query + ": " + d.Message
	}

	if allowedSorts[o.SortBy] {
		query = query + " order:" + o.SortBy
	}

	if allowedStatuses[o.Status] {
		query = query + " status:" + o.Status
	}

	return query
}
