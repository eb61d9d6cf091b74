package types

// Topic is one tradeable prediction-market question. Multi-outcome topics
// carry their binary instruments in ChildList; a topic without children is
// itself a single binary instrument.
type Topic struct {
	TopicID     int64   `json:"topicId"`
	Title       string  `json:"title"`
	Volume      string  `json:"volume"`
	YesPos      string  `json:"yesPos"`
	NoPos       string  `json:"noPos"`
	YesBuyPrice string  `json:"yesBuyPrice"`
	NoBuyPrice  string  `json:"noBuyPrice"`
	ChildList   []Topic `json:"childList"`
}

// SubMarkets resolves the binary instruments to trade for a topic.
// A topic with no children is treated as a single sub-market equal to itself.
func (t *Topic) SubMarkets() []Topic {
	if len(t.ChildList) == 0 {
		return []Topic{*t}
	}
	return t.ChildList
}

// TopicListResult is the result field of the topic listing response.
type TopicListResult struct {
	List []Topic `json:"list"`
}

// TopicListResponse is the full topic listing envelope.
type TopicListResponse struct {
	Envelope
	Result TopicListResult `json:"result"`
}
