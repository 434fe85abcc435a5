package models

import (
	"encoding/json"
	"sync"
)

// StatisticValue is a single named statistic as returned by the service.
// Key is its identity.
type StatisticValue struct {
	Key         string        `json:"key"`
	Value       NumericString `json:"value"`
	Sorting     *string       `json:"sorting"`
	Rank        NumericString `json:"rank"`
	ValueChange NumericString `json:"value_change"`
	RankChange  NumericString `json:"rank_change"`
}

// UnmarshalJSON fills numeric fields the server omitted with "0".
func (v *StatisticValue) UnmarshalJSON(b []byte) error {
	type plain StatisticValue
	p := plain{Value: "0", Rank: "0", ValueChange: "0", RankChange: "0"}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = StatisticValue(p)
	return nil
}

// FindByKey returns the first value with the given key.
func FindByKey(values []StatisticValue, key string) (StatisticValue, bool) {
	for _, v := range values {
		if v.Key == key {
			return v, true
		}
	}
	return StatisticValue{}, false
}

// UserStatistics is a derived view of a player's statistic record.
// It is not authoritative: the client's cache is.
type UserStatistics struct {
	Name       string
	Statistics []StatisticValue

	once  sync.Once
	index map[string]int
}

// NewUserStatistics builds a view over values.
func NewUserStatistics(name string, values []StatisticValue) *UserStatistics {
	return &UserStatistics{Name: name, Statistics: values}
}

// Get looks a statistic up by key. The key index is built on first use and
// kept for the lifetime of the object, so Statistics must not be modified
// after the first call.
func (u *UserStatistics) Get(key string) (StatisticValue, bool) {
	u.once.Do(func() {
		u.index = make(map[string]int, len(u.Statistics))
		for i, v := range u.Statistics {
			if _, dup := u.index[v.Key]; !dup {
				u.index[v.Key] = i
			}
		}
	})
	i, ok := u.index[key]
	if !ok {
		return StatisticValue{}, false
	}
	return u.Statistics[i], true
}

// UnmarshalJSON accepts both the fetch shape ("statistics") and the
// submission shape ("values").
func (u *UserStatistics) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name       string           `json:"name"`
		Statistics []StatisticValue `json:"statistics"`
		Values     []StatisticValue `json:"values"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	u.Name = raw.Name
	u.Statistics = raw.Statistics
	if u.Statistics == nil {
		u.Statistics = raw.Values
	}
	return nil
}

// MarshalJSON encodes the view using the fetch shape.
func (u *UserStatistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string           `json:"name"`
		Statistics []StatisticValue `json:"statistics"`
	}{u.Name, u.Statistics})
}

// StatisticResponse is the body returned by create and update calls.
// ID is present on create and may be empty on update.
type StatisticResponse struct {
	Name   string           `json:"name"`
	ID     string           `json:"_id"`
	Values []StatisticValue `json:"values"`
}

// ToUserStatistics converts the response into a view object.
func (r *StatisticResponse) ToUserStatistics() *UserStatistics {
	return NewUserStatistics(r.Name, r.Values)
}

// StatisticRequest is the create/update body. Name is omitted on update.
type StatisticRequest struct {
	Name   string            `json:"name,omitempty"`
	Values map[string]string `json:"values"`
}
