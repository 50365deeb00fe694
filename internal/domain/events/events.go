package events

const (
	PostingApprovedTopic = "posting:approved"
	PostingEditedTopic   = "posting:edited"
	PostingDeletedTopic  = "posting:deleted"
)

type PostingApproved struct {
	PostingID uint
}

type PostingEdited struct {
	PostingID uint
}

type PostingDeleted struct {
	PostingID uint
}
