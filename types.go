package venmo

// Identity is one of the identities tied to an account. Accounts can carry
// a business identity next to the personal one.
type Identity struct {
	Username              string `json:"username"`
	PictureURL            string `json:"pictureUrl"`
	DisplayName           string `json:"displayName"`
	IdentityType          string `json:"identityType"`
	IdentitySubType       string `json:"identitySubType,omitempty"`
	Balance               int64  `json:"balance"`
	NumberOfNotifications int    `json:"numberOfNotifications"`
	ExternalID            string `json:"externalId"`
	Initials              string `json:"initials"`
}

// StoriesResponse is one page of the transaction feed. A non-empty NextID
// continues the feed in reverse-chronological order on a follow-up call.
type StoriesResponse struct {
	NextID  string  `json:"nextId"`
	Stories []Story `json:"stories"`
}

// Story is a single feed entry.
type Story struct {
	ID        string         `json:"id"`
	Amount    string         `json:"amount"`
	Avatar    string         `json:"avatar"`
	Initials  string         `json:"initials"`
	Audience  string         `json:"audience"`
	Date      string         `json:"date"`
	Note      StoryNote      `json:"note"`
	Type      string         `json:"type"`
	SubType   string         `json:"subType"`
	Title     StoryTitle     `json:"title"`
	Mentions  StoryMentions  `json:"mentions"`
	PaymentID string         `json:"paymentId"`
	Likes     StoryReactions `json:"likes"`
	Comments  StoryReactions `json:"comments"`
}

// StoryNote carries the free-text note or funding memo of a story.
type StoryNote struct {
	Type     string `json:"type,omitempty"`
	Date     string `json:"date,omitempty"`
	Name     string `json:"name,omitempty"`
	LastFour string `json:"lastFour,omitempty"`
	Content  string `json:"content,omitempty"`
}

// StoryTitle identifies the two parties and the action of a story.
type StoryTitle struct {
	TitleType string       `json:"titleType"`
	Payload   StoryPayload `json:"payload"`
	Receiver  StoryParty   `json:"receiver"`
	Sender    StoryParty   `json:"sender"`
}

// StoryPayload is the action descriptor inside a story title.
type StoryPayload struct {
	Action  string `json:"action"`
	SubType string `json:"subType"`
}

// StoryParty is one side of a transaction.
type StoryParty struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
}

// StoryMentions summarizes mentions attached to a story.
type StoryMentions struct {
	Count int `json:"count"`
}

// StoryReactions summarizes likes or comments on a story.
type StoryReactions struct {
	Count                int  `json:"count"`
	UserCommentedOrLiked bool `json:"userCommentedOrLiked"`
}

// EligibilityInput names the exact payment intent to check. The resulting
// token is bound server-side to this tuple, so it must match the following
// payment verbatim.
type EligibilityInput struct {
	TargetID      string
	AmountInCents int64
	Action        PaymentType
	Note          string
}

// Fee is one entry of a fee breakdown.
type Fee struct {
	FeeType            string  `json:"feeType"`
	FixedAmount        float64 `json:"fixedAmount"`
	VariablePercentage float64 `json:"variablePercentage"`
}

// EligibilityResult reports whether a transfer is permitted. An ineligible
// transfer is a normal result, not an error.
type EligibilityResult struct {
	Eligible         bool   `json:"eligible"`
	EligibilityToken string `json:"eligibilityToken"`
	Fees             []Fee  `json:"fees"`
}

// PaymentType selects between sending money and requesting it.
type PaymentType string

const (
	PaymentTypePay     PaymentType = "pay"
	PaymentTypeRequest PaymentType = "request"
)

// PaymentRequest submits a payment or request. FundingSourceID must be a
// wallet id from FundingInstruments and TargetUserID an id from Person; the
// EligibilityToken must come from an Eligibility call with the same tuple.
type PaymentRequest struct {
	TargetUserID     string      `json:"targetUserId"`
	AmountInCents    int64       `json:"amountInCents"`
	Audience         string      `json:"audience"`
	Note             string      `json:"note"`
	Type             PaymentType `json:"type"`
	FundingSourceID  string      `json:"fundingSourceId"`
	EligibilityToken string      `json:"eligibilityToken"`
}

// LegacyPaymentRequest targets the older v1 payment endpoint, which
// authenticates with a bearer token and takes dollar amounts. A negative
// amount turns the payment into a charge request.
type LegacyPaymentRequest struct {
	UserID   string  `json:"user_id"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Audience string  `json:"audience"`
}
