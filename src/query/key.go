package query

import "net/url"

// Key identifies a cache slot by entity kind, operation and the canonical
// encoding of the call's parameters.
type Key struct {
	Entity string
	Op     string
	Params string
}

func NewKey(entity, op string, params url.Values) Key {
	return Key{Entity: entity, Op: op, Params: params.Encode()}
}

func EntityKey(entity, id string) Key {
	return Key{Entity: entity, Op: "detail", Params: url.Values{"id": {id}}.Encode()}
}

func (k Key) String() string {
	return k.Entity + "|" + k.Op + "|" + k.Params
}

// Prefix covers every params variant of one entity+operation. Invalidating a
// list invalidates all of its filterings at once.
type Prefix string

func ListPrefix(entity, op string) Prefix {
	return Prefix(entity + "|" + op + "|")
}

// Canonical keys for the entities the services expose.

func ResourceListKey(params url.Values) Key { return NewKey("resources", "list", params) }
func ResourceKey(id string) Key             { return EntityKey("resources", id) }
func AvailabilityKey(id, start, end string) Key {
	return NewKey("resources", "availability", url.Values{"id": {id}, "startDate": {start}, "endDate": {end}})
}

func MyBookingsKey(params url.Values) Key  { return NewKey("bookings", "my", params) }
func AllBookingsKey(params url.Values) Key { return NewKey("bookings", "list", params) }
func BookingKey(id string) Key             { return EntityKey("bookings", id) }

func NotificationListKey(params url.Values) Key { return NewKey("notifications", "list", params) }
func UnreadCountKey() Key                       { return NewKey("notifications", "unreadCount", nil) }

func UserListKey(params url.Values) Key { return NewKey("users", "list", params) }
func CurrentUserKey() Key               { return NewKey("users", "me", nil) }
func UserKey(id string) Key             { return EntityKey("users", id) }

func AnalyticsKey(op string, params url.Values) Key { return NewKey("analytics", op, params) }
func AIKey(op string, params url.Values) Key        { return NewKey("ai", op, params) }
