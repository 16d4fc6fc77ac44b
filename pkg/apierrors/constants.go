package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidFilter      = "invalidFilter"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailListHistory    = "failListHistory"
	MsgDependencyBlocked  = "dependencyBlocked"
	MsgDependencyCycle    = "dependencyCycle"
	MsgSelfDependency     = "selfDependency"
	MsgUnknownDependency  = "unknownDependency"
)
