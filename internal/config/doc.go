// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package config provides configuration loading for the recommendations and
marketplace binaries.

# Configuration Sources

Values are layered with koanf, lowest priority first:

 1. Struct defaults (defaultConfig)
 2. YAML file: $CONFIG_PATH, ./config.yaml, /etc/bookshelf/config.yaml
 3. Environment variables, through an explicit name mapping

Call LoadDotEnv before Load to pull a local .env file into the environment.

# Environment Variables

Recommendations service:
  - CATALOG_PATH (alias DB_PATH): catalog JSON file (default: books.json)
  - RECOMMENDATIONS_PORT (alias HTTP_PORT): RPC port (default: 50051)
  - HTTP_HOST, HTTP_TIMEOUT
  - RECOMMEND_WORKERS: concurrent Recommend calls (default: 10)
  - RECOMMEND_STRATEGY: random (default), heuristic, personalized
  - RECOMMEND_SEED: fixed seed for reproducible sampling

NATS transport:
  - NATS_ENABLED, NATS_EMBEDDED, NATS_URL, NATS_HOST, NATS_PORT
  - NATS_SUBJECT (default: recommendations.recommend), NATS_QUEUE_GROUP

Marketplace:
  - MARKETPLACE_HOST, MARKETPLACE_PORT (default: 5000)
  - RECOMMENDATIONS_HOST (default: localhost)
  - RECOMMENDATIONS_TRANSPORT: http (default) or nats
  - RECOMMENDATIONS_TIMEOUT, MARKETPLACE_MAX_RESULTS, MARKETPLACE_USER_ID

Shared:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

When both an alias and its preferred name are set, the preferred name wins.
*/
package config
