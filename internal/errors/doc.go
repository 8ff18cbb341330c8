// Package errors provides the coded errors shared by every layer of the
// rpg-fitness engine.
//
// An *Error carries a Code, a message that is safe to return to the model or
// the user, an optional cause, and metadata keyed by the Meta* constants.
//
// # Creating errors
//
//	err := errors.QuestNotFound(questID)
//	err := errors.InvalidPillar(string(pillar))
//	err := errors.MissingArgument("name")
//	err := errors.Unavailable("gateway returned an empty response").
//	    WithMeta(errors.MetaIntent, string(req.Intent))
//
// Wrapping keeps the code of an inner *Error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load snapshot")
//	}
//
// WrapWithCode reclassifies, for example a decode failure as DataLoss:
//
//	return errors.WrapWithCode(err, errors.CodeDataLoss, "snapshot is corrupt")
//
// # Checking errors
//
//	if errors.IsNotFound(err) {
//	    // first run for this user
//	}
//	msg := errors.GetMessage(err)
//	questID := errors.GetMeta(err)[errors.MetaQuestID]
//
// # Validation
//
// Config and dependency structs validate through a ValidationBuilder. The
// resulting InvalidArgument error keeps the per-field messages under
// MetaValidation.
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("FITNESS_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
//	errors.ValidatePositiveDuration("FITNESS_GATEWAY_TIMEOUT", c.GatewayTimeout, vb)
//	if c.Clock == nil {
//	    vb.RequiredField("Clock")
//	}
//	return vb.Build()
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err). Metadata is attached as a
// google.rpc.ErrorInfo detail whose reason is the code and whose domain is
// ErrorDomain.
//
// # Codes
//
//   - InvalidArgument: bad tool arguments, bad config, unknown pillar
//   - NotFound: quest, skill or snapshot missing
//   - AlreadyExists: duplicate catalog entry
//   - FailedPrecondition: quest already closed, core skill removal
//   - Unavailable: AI gateway or storage backend down
//   - DataLoss: stored snapshot cannot be decoded
//   - Canceled: context canceled mid-refresh
//   - Internal: anything unclassified
package errors
