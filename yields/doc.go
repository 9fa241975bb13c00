// Package yields answers the nucleosynthetic yield queries of the zone
// timestepper: core collapse supernova yields by metallicity, AGB star yields
// by metallicity and turnoff mass, and type Ia supernova yields released per
// timestep through a delay time distribution.
//
// Yields are net mass yields per unit stellar mass formed.
package yields
