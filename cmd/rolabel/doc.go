// Command rolabel extracts ego trajectories and actor track fragments from a
// vehicle bus recording and writes them as a label bundle.
//
//	rolabel run --data_folder ./data/ --logs_folder ./labels/ --range 4.0
//	rolabel inspect --data_folder ./data/
//	rolabel config init ./rolabel.toml
package main
