// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Package supervisor runs the long-lived parts of reviewrec under a
thejerf/suture/v4 supervision tree.

The tree has two layers. The ingest layer holds the service that loads the
review log into the engine and then idles. The API layer holds the HTTP
server. Both start together: the server answers /health/ready with 503
until ingestion finishes and the engine is marked ready.

Supervisor events (restarts, backoff, panics) are logged through
sutureslog, which takes a *slog.Logger. Pass logging.NewSlogLogger() so the
events land in the same zerolog stream as everything else:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddIngestService(services.NewIngestService(engine, ingestCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

Ingestion failure is fatal: the ingest service returns
suture.ErrTerminateSupervisorTree because an engine that failed part way
cannot be re-ingested, and restarting it would serve a partial corpus.
*/
package supervisor
