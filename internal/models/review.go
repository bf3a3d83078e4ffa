package models

// ReviewMatch is one professor review returned from the vector index,
// ranked by similarity to the query embedding. The index metadata is the
// system of record; this struct is read-only from our side.
type ReviewMatch struct {
	Professor string  `json:"id"      bson:"id"`
	Review    string  `json:"review"  bson:"review"`
	Subject   string  `json:"subject" bson:"subject"`
	Stars     float64 `json:"stars"   bson:"stars"`
	Score     float64 `json:"score"   bson:"score"`
}
