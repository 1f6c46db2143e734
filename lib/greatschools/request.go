package greatschools

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

type SearchLevel string

const (
	ElementarySchools SearchLevel = "elementary-schools"
	MiddleSchools     SearchLevel = "middle-schools"
	HighSchools       SearchLevel = "high-schools"
)

type SearchSort string

const (
	SortRelevance SearchSort = "relevance"
	SortAlpha     SearchSort = "alpha"
)

const DefaultSearchLimit = 10

// SearchParams are the parameters of a school search. Query and State are required.
type SearchParams struct {
	Query string
	// State is a two letter state abbreviation.
	State string
	// Level restricts results to one school level, empty means all levels.
	Level SearchLevel
	// Sort defaults to the service's relevance ordering.
	Sort SearchSort
	// Limit is the maximum number of schools, 0 selects DefaultSearchLimit.
	Limit int
}

// Params is an open set of additional query parameters.
type Params map[string]string

var stateCode = regexp.MustCompile(`^[A-Za-z]{2}$`)

func validateState(field, state string) error {
	if state == "" {
		return missingParam(field)
	}
	if !stateCode.MatchString(state) {
		return &ValidationError{Field: field, Reason: "must be a two letter state abbreviation"}
	}
	return nil
}

func buildSearchPath(params SearchParams, key string) (string, error) {
	if params.Query == "" {
		return "", missingParam("q")
	}
	err := validateState("state", params.State)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("q", params.Query)
	query.Set("state", params.State)

	switch params.Level {
	case "":
	case ElementarySchools, MiddleSchools, HighSchools:
		query.Set("level", string(params.Level))
	default:
		return "", &ValidationError{
			Field:  "level",
			Reason: "must be one of elementary-schools, middle-schools, high-schools",
		}
	}

	switch params.Sort {
	case "":
	case SortRelevance, SortAlpha:
		query.Set("sort", string(params.Sort))
	default:
		return "", &ValidationError{Field: "sort", Reason: "must be one of relevance, alpha"}
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit < 1 {
		return "", &ValidationError{Field: "limit", Reason: "must be at least 1"}
	}
	query.Set("limit", strconv.Itoa(limit))

	return encodePath("/search/schools", query, key), nil
}

// buildSchoolPath builds the path of the per-school operations, prefix is
// the operation's path before the state and school id components.
func buildSchoolPath(prefix, state, gsID string, params Params, key string) (string, error) {
	err := validateState("state", state)
	if err != nil {
		return "", err
	}
	if gsID == "" {
		return "", missingParam("gsId")
	}

	query := url.Values{}
	for name, value := range params {
		if name == "" {
			return "", &ValidationError{Field: name, Reason: "parameter names must not be empty"}
		}
		if name == "key" {
			return "", &ValidationError{Field: name, Reason: "is supplied by the client configuration"}
		}
		query.Set(name, value)
	}

	path := strings.Join([]string{
		prefix,
		url.PathEscape(state),
		url.PathEscape(gsID),
	}, "/")
	return encodePath(path, query, key), nil
}

// encodePath injects the key and encodes the query, parameters are sorted
// by name so the same input always yields the same path.
func encodePath(path string, query url.Values, key string) string {
	if key != "" {
		query.Set("key", key)
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
