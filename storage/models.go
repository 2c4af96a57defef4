package storage

// Vote is one juror's scored opinion on one anonymous photo, as stored in
// the votes table. Score and Timestamp are left untyped because the web
// app has written both numbers and strings over time; normalization
// happens in the reconcile package.
type Vote struct {
	PhotoID   string      `dynamodbav:"photoId" json:"photoId"`
	Score     interface{} `dynamodbav:"score" json:"score"`
	JuryEmail string      `dynamodbav:"juryEmail" json:"juryEmail"`
	Comment   string      `dynamodbav:"comment" json:"comment,omitempty"`
	Timestamp interface{} `dynamodbav:"timestamp" json:"timestamp"`
}
