package common

// AccessTokenHeaderName is the NATS message header key used to carry the
// access token on outbound API requests.
const AccessTokenHeaderName = "access_token"

// NATS subjects of the audit API. API subjects use request/reply with CBOR
// payloads; the oracle callback subject is plain publish.
const (
	SubjectSubmitHash     = "hashaudit.api.hash.submit"
	SubjectSubmitGuess    = "hashaudit.api.guess.submit"
	SubjectRequestReveal  = "hashaudit.api.hash.reveal"
	SubjectRequestVerify  = "hashaudit.api.guess.verify"
	SubjectGetHash        = "hashaudit.api.hash.get"
	SubjectGetGuess       = "hashaudit.api.guess.get"
	SubjectListGuesses    = "hashaudit.api.guess.list"
	SubjectOracleDecrypt  = "hashaudit.oracle.decrypt"
	SubjectOracleCallback = "hashaudit.oracle.callback"
	SubjectEventPrefix    = "hashaudit.events."
)
