package rtcm3

// SSRSink receives raw SSR (State Space Representation) correction
// messages (1057-1068, 1240-1270, 4076) without decoding them: parsing SSR
// orbit/clock/bias corrections is an explicit Non-goal of this package.
// A caller that needs SSR support attaches its own collaborator here; the
// default Decoder leaves SSR nil and silently drops these message types,
// still counting them in TypeList.
type SSRSink interface {
	Handle(messageID int, payload []byte)
}
