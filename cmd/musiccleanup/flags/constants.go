package flags

const Verbose = `v`
const Quiet = `q`
const Plain = `p`
const Help = `h`
const Debug = `debug`
const Config = `config`
const Strategy = `strategy`
const Threshold = `threshold`
