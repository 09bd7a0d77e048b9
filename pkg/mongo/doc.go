// Package mongo opens the MongoDB client used when newsletter subscribers
// live in a document store instead of PostgreSQL.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	store := newsletter.NewMongoStore(client.Database(cfg.Database).Collection(newsletter.DefaultCollection))
//	ready := httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(client)}
//
// Connection failures are joined with ErrFailedToConnectToMongo.
package mongo
