package domain

// Role identifies a logical seat in the dialogue.
type Role string

const (
	RoleModelA      Role = "model_a"
	RoleModelB      Role = "model_b"
	RoleCommentator Role = "commentator"
)

// RequiredRoles lists the seats that must be filled before a dialogue can run.
var RequiredRoles = []Role{RoleModelA, RoleModelB, RoleCommentator}

// TranscriptEntry records one primary turn of the dialogue.
// Commentary never enters the transcript.
type TranscriptEntry struct {
	Round   int
	Speaker Role
	Content string
}
