package model

import "github.com/google/uuid"

// WordQueue is a per-host sliding window of recently issued secret words.
// Words holds the last GuaranteedUniqueCount draws, oldest first.
type WordQueue struct {
	UserID                uuid.UUID `json:"user_id"`
	Words                 []string  `json:"secret_words"`
	GuaranteedUniqueCount int       `json:"guaranteed_unique_count"`
}

func (*WordQueue) StorageKey() string {
	return "word_queue"
}

func (q *WordQueue) PrimaryKey() string {
	return q.UserID.String()
}

func NewWordQueue(userID uuid.UUID, guaranteedUniqueCount int) *WordQueue {
	return &WordQueue{
		UserID:                userID,
		GuaranteedUniqueCount: guaranteedUniqueCount,
	}
}

func WordQueueFromRecord(rec Record) (*WordQueue, bool) {
	rawUserID, ok := recordString(rec, "user_id")
	if !ok {
		return nil, false
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, false
	}

	words, ok := recordStrings(rec, "secret_words")
	if !ok {
		return nil, false
	}
	count, ok := recordInt(rec, "guaranteed_unique_count")
	if !ok {
		return nil, false
	}

	return &WordQueue{
		UserID:                userID,
		Words:                 words,
		GuaranteedUniqueCount: count,
	}, true
}

func (q *WordQueue) ToRecord() Record {
	words := q.Words
	if words == nil {
		words = []string{}
	}
	return Record{
		"user_id":                 q.UserID.String(),
		"secret_words":            words,
		"guaranteed_unique_count": q.GuaranteedUniqueCount,
	}
}

// Push appends a drawn word and evicts the oldest entries beyond the
// guaranteed-unique window.
func (q *WordQueue) Push(word string) {
	q.Words = append(q.Words, word)
	if len(q.Words) > q.GuaranteedUniqueCount {
		q.Words = q.Words[len(q.Words)-q.GuaranteedUniqueCount:]
	}
}
