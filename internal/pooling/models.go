package pooling

import "time"

// Member is one ship's position in a pool: the balance it brought in and
// the balance it left with. CBBeforeG is exactly what the caller supplied.
type Member struct {
	ShipID    string  `json:"ship_id"`
	CBBeforeG float64 `json:"cb_before_g"`
	CBAfterG  float64 `json:"cb_after_g"`
}

// Pool is the immutable output of one redistribution run.
type Pool struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberInput is a redistribution request line.
type MemberInput struct {
	ShipID    string  `json:"shipId"`
	CBBeforeG float64 `json:"cb_before_g"`
}
