// Package context provides request-scoped memoization and staged writes for
// multi-step application operations.
//
// Reads are memoized per operation so each collaborator sees the same snapshot:
//
//	rc := context.New(ctx)
//	order, err := context.Load(rc, orderProvider{repo: orders, id: id})
//
// Writes are staged as actions and committed in order. If one fails, the
// already-executed actions are rolled back in reverse:
//
//	_ = rc.AddAction(context.Step("upload pdf", upload, deleteUpload))
//	_ = rc.AddAction(context.Step("save result", save, deleteResult))
//
//	if err := rc.Commit(ctx); err != nil {
//	    // the upload has been deleted again
//	}
package context
