package descriptor

// Field numbers of descriptorpb's tree-shaped messages, reproduced here
// because SourceCodeInfo.Location.Path encodes a doc comment's position as
// a sequence of these tags/indices and we need the same table both to walk
// the tree and to resolve comments attached to what we find.
const (
	fileMessagesTag = 4
	fileEnumsTag    = 5
	fileServicesTag = 6
	fileOptionsTag  = 8

	messageFieldsTag  = 2
	messageNestedTag  = 3
	messageEnumsTag   = 4
	messageOptionsTag = 7
	messageOneofsTag  = 8

	enumValuesTag  = 2
	enumOptionsTag = 3

	serviceMethodsTag = 2
	serviceOptionsTag = 3
)
