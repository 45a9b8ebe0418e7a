package cache

// HomeFeedKey is the fixed key under which the first page of the home feed is
// cached. Only page 1 is ever cached; deeper pages always hit the store.
const HomeFeedKey = "feed:home:p1"
