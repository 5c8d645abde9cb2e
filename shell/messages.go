package shell

// Prompt is printed before every command.
const Prompt = ">>> "

// Messages printed in reply to commands.
const (
	msgAddFormat        = "Did not add due to incorrect format."
	msgRemoveFormat     = "Did not remove due to incorrect format."
	msgBadCommand       = "Did not execute due to incorrect command."
	msgResolutionFormat = "Did not change resolution due to incorrect format."
	msgResolutionBounds = "Did not change resolution due to exceeding boundaries."
	msgImageFile        = "Did not execute due to problem with image file."
	msgOutputFormat     = "Did not change output method due to incorrect format."
	msgEmptyCharset     = "Did not execute. Charset is empty."
	msgOutputFailed     = "Did not execute due to problem with output."
	msgResolutionSet    = "Resolution set to %d."
)
