// Package session keeps live Quoridor matches in memory and, optionally,
// on disk.
//
// A session owns one engine plus the controller chosen for each seat
// ("human" or a policy name) and the seed those policies draw from. IDs are
// case-insensitive; an empty ID gets a random 4-character hex one.
//
// Persistence stores a snapshot of the current position only. Loading a
// snapshot rebuilds the engine from the embedded board config (or resolves
// the config by name) and re-creates the computer players from the seed.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	sess, err := manager.Create("", config, service.SessionOptions{
//		Controllers: [2]string{"human", "wall_first_max"},
//		Seed:        1,
//	})
package session
