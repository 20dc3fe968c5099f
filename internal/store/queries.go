package store

const queryUpsertMapping = `
INSERT INTO realm_mappings (
	realm_key, display_name, region, connected_realm_id, namespace,
	source, discovered_at, updated_at
) VALUES (
	@realm_key, @display_name, @region, @connected_realm_id, @namespace,
	@source, now(), now()
)
ON CONFLICT (realm_key) DO UPDATE SET
	display_name       = EXCLUDED.display_name,
	region             = EXCLUDED.region,
	connected_realm_id = EXCLUDED.connected_realm_id,
	namespace          = EXCLUDED.namespace,
	source             = EXCLUDED.source,
	updated_at         = now()
RETURNING discovered_at, updated_at`

const queryGetMapping = `
SELECT realm_key, display_name, region, connected_realm_id, namespace,
       source, discovered_at, updated_at
FROM realm_mappings
WHERE realm_key = $1`

const queryListMappings = `
SELECT realm_key, display_name, region, connected_realm_id, namespace,
       source, discovered_at, updated_at
FROM realm_mappings
ORDER BY realm_key`

const queryDeleteMapping = `
DELETE FROM realm_mappings WHERE realm_key = $1`
